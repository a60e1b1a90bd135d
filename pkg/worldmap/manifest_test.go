package worldmap

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `
[world]
name = "game"

[[state]]
id = "login"
label = "Login Screen"

[[transition]]
from = "login"
to = "lobby"
action = "press_start"

[[transition]]
from = "lobby"
to = "match"
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	if m.Name != "game" {
		t.Errorf("name = %q, want game", m.Name)
	}
	if len(m.Transitions) != 2 {
		t.Fatalf("transitions = %d, want 2", len(m.Transitions))
	}
	if m.Transitions[0].Action != "press_start" {
		t.Errorf("action = %q, want press_start", m.Transitions[0].Action)
	}
	if m.Transitions[1].From != "lobby" || m.Transitions[1].To != "match" {
		t.Errorf("transition[1] = %+v", m.Transitions[1])
	}
	if len(m.States) != 1 || m.States[0].Label != "Login Screen" {
		t.Errorf("states = %+v", m.States)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "InvalidTOML", input: `[[transition] from = "a"`},
		{name: "MissingTo", input: "[[transition]]\nfrom = \"a\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.toml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadManifestFile(path)
	if err != nil {
		t.Fatalf("ReadManifestFile: %v", err)
	}
	if m.Name != "game" {
		t.Errorf("name = %q, want game", m.Name)
	}

	if _, err := ReadManifestFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
