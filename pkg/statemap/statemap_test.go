package statemap

import (
	"errors"
	"slices"
	"testing"
)

func TestAdd(t *testing.T) {
	g := New()
	if err := g.Add("a", "b"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := g.Add("", "b"); !errors.Is(err, ErrEmptyState) {
		t.Errorf("empty from: got %v, want ErrEmptyState", err)
	}
	if err := g.Add("a", ""); !errors.Is(err, ErrEmptyState) {
		t.Errorf("empty to: got %v, want ErrEmptyState", err)
	}
}

func TestFromTransitions(t *testing.T) {
	tests := []struct {
		name        string
		transitions []Transition
		wantStates  int
		wantEdges   int
		wantErr     bool
	}{
		{
			name:        "Empty",
			transitions: nil,
			wantStates:  0,
			wantEdges:   0,
		},
		{
			name: "Chain",
			transitions: []Transition{
				{From: "a", To: "b"},
				{From: "b", To: "c"},
			},
			wantStates: 3,
			wantEdges:  2,
		},
		{
			name: "DuplicatesPreserved",
			transitions: []Transition{
				{From: "a", To: "b"},
				{From: "a", To: "b"},
			},
			wantStates: 2,
			wantEdges:  2,
		},
		{
			name:        "EmptyID",
			transitions: []Transition{{From: "a", To: ""}},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromTransitions(tt.transitions)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromTransitions: %v", err)
			}
			if got := g.StateCount(); got != tt.wantStates {
				t.Errorf("states = %d, want %d", got, tt.wantStates)
			}
			if got := g.TransitionCount(); got != tt.wantEdges {
				t.Errorf("transitions = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	g := New()
	g.Add("a", "c")
	g.Add("a", "b")
	g.Add("a", "c") // duplicate, kept in place

	if got, want := g.Neighbors("a"), []string{"c", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(a) = %v, want %v", got, want)
	}

	// Unknown states and pure sinks yield an empty sequence, not an error.
	if got := g.Neighbors("b"); len(got) != 0 {
		t.Errorf("Neighbors(b) = %v, want empty", got)
	}
	if got := g.Neighbors("missing"); len(got) != 0 {
		t.Errorf("Neighbors(missing) = %v, want empty", got)
	}
}

func TestContains(t *testing.T) {
	g := New()
	g.Add("a", "b")

	if !g.Contains("a") {
		t.Error("Contains(a) = false, want true")
	}
	// Target-only states are known through the edges pointing at them.
	if !g.Contains("b") {
		t.Error("Contains(b) = false, want true")
	}
	if g.Contains("c") {
		t.Error("Contains(c) = true, want false")
	}
}

func TestStates(t *testing.T) {
	g := New()
	g.Add("lobby", "match")
	g.Add("login", "lobby")

	want := []string{"lobby", "login", "match"}
	if got := g.States(); !slices.Equal(got, want) {
		t.Errorf("States() = %v, want %v", got, want)
	}
}

func TestClone(t *testing.T) {
	g := New()
	g.Add("a", "b")
	g.Add("a", "c")
	g.Add("b", "d")
	g.Add("c", "d")

	c := g.Clone()
	c.Add("d", "e")

	if g.TransitionCount() != 4 {
		t.Errorf("original transitions = %d, want 4", g.TransitionCount())
	}
	if c.TransitionCount() != 5 {
		t.Errorf("clone transitions = %d, want 5", c.TransitionCount())
	}

	// Clone preserves insertion order and therefore routing results.
	got, err := c.FindPath("a", "d")
	if err != nil {
		t.Fatalf("FindPath on clone: %v", err)
	}
	if want := (Route{"a", "b", "d"}); !slices.Equal(got, want) {
		t.Errorf("clone route = %v, want %v", got, want)
	}
}

func TestTransitionsOrder(t *testing.T) {
	in := []Transition{
		{From: "x", To: "y"},
		{From: "a", To: "b"},
		{From: "x", To: "z"},
	}
	g, err := FromTransitions(in)
	if err != nil {
		t.Fatalf("FromTransitions: %v", err)
	}
	if got := g.Transitions(); !slices.Equal(got, in) {
		t.Errorf("Transitions() = %v, want %v", got, in)
	}
}
