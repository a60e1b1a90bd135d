package worldmap

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/routeworks/wayfind/pkg/statemap"
)

// Map is the canonical serialization format for world maps. It is used for
// JSON files, API payloads, caching, and the persisted map store (hence the
// bson tags).
//
// The format is designed for round-trip fidelity: transition order is
// preserved exactly as written, since it governs route tie-breaking in the
// pathfinder. States may be listed explicitly to carry labels and metadata,
// but any state referenced only by a transition is implied and need not be
// listed.
type Map struct {
	Name        string       `json:"name,omitempty" bson:"name,omitempty"`
	States      []State      `json:"states,omitempty" bson:"states,omitempty"`
	Transitions []Transition `json:"transitions" bson:"transitions"`
}

// State describes a named node in the world with optional display data.
// Only the ID matters to the pathfinder; Label and Meta exist for tooling.
type State struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (s *State) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Transition is a directed edge in the serialized map. Action optionally
// names the executable action that performs the transition; the pathfinder
// ignores it, but the caller's action dispatcher uses it to turn each route
// step into work.
type Transition struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Action string `json:"action,omitempty" bson:"action,omitempty"`
}

// ToGraph builds the routing graph from the map's transitions, preserving
// their order. Explicit state entries do not affect the graph; a state with
// no outgoing transitions simply has no adjacency entry.
func ToGraph(m Map) (*statemap.Graph, error) {
	g := statemap.New()
	for i, t := range m.Transitions {
		if err := g.Add(t.From, t.To); err != nil {
			return nil, fmt.Errorf("transition %d (%s→%s): %w", i, t.From, t.To, err)
		}
	}
	return g, nil
}

// FromGraph converts a routing graph back to its serialization format.
// States are sorted by ID for deterministic output; transitions keep
// insertion order.
func FromGraph(g *statemap.Graph) Map {
	states := g.States()
	slices.Sort(states)

	out := Map{
		States:      make([]State, len(states)),
		Transitions: make([]Transition, 0, g.TransitionCount()),
	}
	for i, id := range states {
		out.States[i] = State{ID: id}
	}
	for _, t := range g.Transitions() {
		out.Transitions = append(out.Transitions, Transition{From: t.From, To: t.To})
	}
	return out
}

// UnmarshalMap deserializes JSON bytes to a Map.
func UnmarshalMap(data []byte) (Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return Map{}, err
	}
	return m, nil
}

// Validate checks that every transition has non-empty endpoints and that
// explicitly listed states have non-empty IDs. It does not require the map
// to be connected: disconnected worlds are valid, queries across the gap
// simply return no route.
func (m Map) Validate() error {
	for i, s := range m.States {
		if s.ID == "" {
			return fmt.Errorf("state %d: %w", i, statemap.ErrEmptyState)
		}
	}
	for i, t := range m.Transitions {
		if t.From == "" || t.To == "" {
			return fmt.Errorf("transition %d: %w", i, statemap.ErrEmptyState)
		}
	}
	return nil
}
