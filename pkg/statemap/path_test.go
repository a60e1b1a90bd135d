package statemap

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func build(t *testing.T, transitions ...Transition) *Graph {
	t.Helper()
	g, err := FromTransitions(transitions)
	if err != nil {
		t.Fatalf("FromTransitions: %v", err)
	}
	return g
}

func TestFindPath(t *testing.T) {
	diamond := []Transition{
		{From: "A", To: "B"},
		{From: "A", To: "C"},
		{From: "B", To: "D"},
		{From: "C", To: "D"},
	}

	tests := []struct {
		name        string
		transitions []Transition
		start, goal string
		want        Route
		wantNoRoute bool
	}{
		{
			name:        "StartEqualsGoal",
			transitions: diamond,
			start:       "A",
			goal:        "A",
			want:        Route{"A"},
		},
		{
			name:        "StartEqualsGoalEmptyGraph",
			transitions: nil,
			start:       "A",
			goal:        "A",
			want:        Route{"A"},
		},
		{
			name:        "EmptyGraphNoRoute",
			transitions: nil,
			start:       "A",
			goal:        "B",
			wantNoRoute: true,
		},
		{
			// Insertion order breaks the tie: B is discovered before C, so
			// B's child D wins over C's.
			name:        "DiamondTieBreak",
			transitions: diamond,
			start:       "A",
			goal:        "D",
			want:        Route{"A", "B", "D"},
		},
		{
			// Reversing the first two transitions flips the tie-break.
			name: "DiamondTieBreakReversed",
			transitions: []Transition{
				{From: "A", To: "C"},
				{From: "A", To: "B"},
				{From: "B", To: "D"},
				{From: "C", To: "D"},
			},
			start: "A",
			goal:  "D",
			want:  Route{"A", "C", "D"},
		},
		{
			name:        "DirectedEdgesNotReversed",
			transitions: []Transition{{From: "A", To: "B"}},
			start:       "B",
			goal:        "A",
			wantNoRoute: true,
		},
		{
			name: "CycleTerminates",
			transitions: []Transition{
				{From: "A", To: "B"},
				{From: "B", To: "A"},
				{From: "B", To: "C"},
			},
			start: "A",
			goal:  "C",
			want:  Route{"A", "B", "C"},
		},
		{
			name: "UnknownGoal",
			transitions: []Transition{
				{From: "A", To: "B"},
			},
			start:       "A",
			goal:        "Z",
			wantNoRoute: true,
		},
		{
			name:        "UnknownStart",
			transitions: diamond,
			start:       "Z",
			goal:        "D",
			wantNoRoute: true,
		},
		{
			// D only appears as a target: it is a valid graph member with
			// zero out-edges, and routing from it fails just like a wholly
			// absent state would.
			name:        "SinkStart",
			transitions: diamond,
			start:       "D",
			goal:        "A",
			wantNoRoute: true,
		},
		{
			name: "LongChain",
			transitions: []Transition{
				{From: "s1", To: "s2"},
				{From: "s2", To: "s3"},
				{From: "s3", To: "s4"},
				{From: "s4", To: "s5"},
			},
			start: "s1",
			goal:  "s5",
			want:  Route{"s1", "s2", "s3", "s4", "s5"},
		},
		{
			// The direct edge wins over the two-hop detour regardless of
			// insertion order: BFS finds the minimum-hop route.
			name: "ShortcutPreferred",
			transitions: []Transition{
				{From: "A", To: "B"},
				{From: "B", To: "C"},
				{From: "A", To: "C"},
			},
			start: "A",
			goal:  "C",
			want:  Route{"A", "C"},
		},
		{
			name: "DuplicateEdgesHarmless",
			transitions: []Transition{
				{From: "A", To: "B"},
				{From: "A", To: "B"},
				{From: "B", To: "C"},
			},
			start: "A",
			goal:  "C",
			want:  Route{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.transitions...)

			got, err := g.FindPath(tt.start, tt.goal)
			if tt.wantNoRoute {
				if !errors.Is(err, ErrNoRoute) {
					t.Fatalf("FindPath = (%v, %v), want ErrNoRoute", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindPath: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindPath = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPathDeterminism(t *testing.T) {
	g := build(t,
		Transition{From: "A", To: "B"},
		Transition{From: "A", To: "C"},
		Transition{From: "B", To: "D"},
		Transition{From: "C", To: "D"},
		Transition{From: "D", To: "E"},
		Transition{From: "C", To: "E"},
	)

	first, err := g.FindPath("A", "E")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := g.FindPath("A", "E")
		if err != nil {
			t.Fatalf("FindPath run %d: %v", i, err)
		}
		if !slices.Equal(got, first) {
			t.Fatalf("run %d returned %v, first run returned %v", i, got, first)
		}
	}
}

// TestFindPathMinimality cross-checks BFS route lengths against an
// independent exhaustive search over every (start, goal) pair of a family of
// small graphs.
func TestFindPathMinimality(t *testing.T) {
	graphs := [][]Transition{
		{
			{From: "A", To: "B"},
			{From: "A", To: "C"},
			{From: "B", To: "D"},
			{From: "C", To: "D"},
			{From: "D", To: "E"},
		},
		{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
			{From: "c", To: "a"},
			{From: "b", To: "d"},
		},
		{
			{From: "x", To: "y"},
			{From: "z", To: "y"},
		},
	}

	for gi, transitions := range graphs {
		t.Run(fmt.Sprintf("Graph%d", gi), func(t *testing.T) {
			g := build(t, transitions...)
			states := g.States()

			for _, start := range states {
				for _, goal := range states {
					want, reachable := exhaustiveDistance(g, start, goal)
					route, err := g.FindPath(start, goal)

					if !reachable {
						if !errors.Is(err, ErrNoRoute) {
							t.Errorf("FindPath(%s, %s) = (%v, %v), want ErrNoRoute", start, goal, route, err)
						}
						continue
					}
					if err != nil {
						t.Errorf("FindPath(%s, %s): %v, want distance %d", start, goal, err, want)
						continue
					}
					if route.Hops() != want {
						t.Errorf("FindPath(%s, %s) hops = %d, want %d (route %v)", start, goal, route.Hops(), want, route)
					}
					if route.Start() != start || route.Goal() != goal {
						t.Errorf("FindPath(%s, %s) endpoints = %v", start, goal, route)
					}
					for _, step := range route.Steps() {
						if !slices.Contains(g.Neighbors(step.From), step.To) {
							t.Errorf("route %v uses nonexistent transition %s→%s", route, step.From, step.To)
						}
					}
				}
			}
		})
	}
}

// exhaustiveDistance computes the true graph distance by brute-force
// deepening, independent of the BFS under test.
func exhaustiveDistance(g *Graph, start, goal string) (int, bool) {
	if start == goal {
		return 0, true
	}
	limit := g.StateCount()
	frontier := map[string]struct{}{start: {}}
	seen := map[string]struct{}{start: {}}
	for depth := 1; depth <= limit; depth++ {
		next := map[string]struct{}{}
		for s := range frontier {
			for _, n := range g.Neighbors(s) {
				if n == goal {
					return depth, true
				}
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					next[n] = struct{}{}
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return 0, false
}

func TestRouteSteps(t *testing.T) {
	r := Route{"a", "b", "c"}
	want := []Transition{{From: "a", To: "b"}, {From: "b", To: "c"}}
	if got := r.Steps(); !slices.Equal(got, want) {
		t.Errorf("Steps() = %v, want %v", got, want)
	}
	if got := (Route{"a"}).Steps(); got != nil {
		t.Errorf("single-element route Steps() = %v, want nil", got)
	}
	if got := (Route{"a"}).Hops(); got != 0 {
		t.Errorf("single-element route Hops() = %d, want 0", got)
	}
}
