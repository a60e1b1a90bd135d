package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/routeworks/wayfind/pkg/worldmap"
)

func sample(name string) worldmap.Map {
	return worldmap.Map{
		Name: name,
		Transitions: []worldmap.Transition{
			{From: "login", To: "lobby"},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	// Load before Save
	if _, err := s.Load(ctx, "game"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("Load missing = %v, want ErrMapNotFound", err)
	}

	// Save and Load round trip
	if err := s.Save(ctx, sample("game")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m, err := s.Load(ctx, "game")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "game" || len(m.Transitions) != 1 {
		t.Errorf("Load = %+v", m)
	}

	// Save replaces
	replacement := sample("game")
	replacement.Transitions = append(replacement.Transitions, worldmap.Transition{From: "lobby", To: "match"})
	if err := s.Save(ctx, replacement); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}
	m, _ = s.Load(ctx, "game")
	if len(m.Transitions) != 2 {
		t.Errorf("replacement transitions = %d, want 2", len(m.Transitions))
	}

	// List is sorted
	s.Save(ctx, sample("alpha"))
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"alpha", "game"}; !slices.Equal(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	// Delete
	if err := s.Delete(ctx, "game"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "game"); !errors.Is(err, ErrMapNotFound) {
		t.Errorf("Delete missing = %v, want ErrMapNotFound", err)
	}
}

func TestMemoryStoreValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, worldmap.Map{}); !errors.Is(err, ErrUnnamedMap) {
		t.Errorf("Save unnamed = %v, want ErrUnnamedMap", err)
	}

	invalid := worldmap.Map{
		Name:        "broken",
		Transitions: []worldmap.Transition{{From: "a", To: ""}},
	}
	if err := s.Save(ctx, invalid); err == nil {
		t.Error("Save invalid map should fail")
	}
}
