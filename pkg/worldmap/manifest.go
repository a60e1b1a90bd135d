package worldmap

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// manifestFile mirrors the TOML layout of a world manifest:
//
//	[world]
//	name = "game"
//
//	[[transition]]
//	from = "login"
//	to = "lobby"
//	action = "press_start"
type manifestFile struct {
	World struct {
		Name string `toml:"name"`
	} `toml:"world"`
	Transitions []manifestTransition `toml:"transition"`
	States      []manifestState      `toml:"state"`
}

type manifestTransition struct {
	From   string `toml:"from"`
	To     string `toml:"to"`
	Action string `toml:"action"`
}

type manifestState struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
}

// ParseManifest decodes a TOML world manifest into a Map.
// Transition order in the file is preserved; it determines route
// tie-breaking, so the manifest author controls which of several equally
// short routes the planner prefers.
func ParseManifest(data []byte) (Map, error) {
	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return Map{}, fmt.Errorf("parse manifest: %w", err)
	}

	m := Map{
		Name:        mf.World.Name,
		Transitions: make([]Transition, len(mf.Transitions)),
	}
	for i, t := range mf.Transitions {
		m.Transitions[i] = Transition{From: t.From, To: t.To, Action: t.Action}
	}
	for _, s := range mf.States {
		m.States = append(m.States, State{ID: s.ID, Label: s.Label})
	}

	if err := m.Validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}

// ReadManifestFile reads and parses a TOML world manifest from disk.
func ReadManifestFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("open %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Map{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
