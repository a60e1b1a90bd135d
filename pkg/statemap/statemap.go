package statemap

import (
	"errors"
	"slices"
)

var (
	// ErrEmptyState is returned by [Graph.Add] and [FromTransitions] when a
	// state identifier is empty. States are identified by value, so an empty
	// name would be indistinguishable from "no state".
	ErrEmptyState = errors.New("state ID must not be empty")

	// ErrNoRoute is returned by [Graph.FindPath] when no directed path exists
	// from start to goal. Unknown start states, unknown goal states, and
	// disconnected components are deliberately not distinguished: from the
	// caller's perspective all three mean no actionable route exists right now.
	// Callers must treat this as an expected, recoverable outcome.
	ErrNoRoute = errors.New("no route between states")
)

// Transition is a directed, unweighted edge between two named world states.
// It represents an available action moving the automation from From to To.
// The same (From, To) pair may appear more than once in a map; duplicates
// are preserved as given and do not affect route correctness.
type Transition struct {
	From string
	To   string
}

// Graph owns the adjacency representation of a world: a mapping from each
// state with outgoing transitions to its ordered successor states. A state
// that only ever appears as a transition target has no entry of its own and
// is known to the graph only through the edges pointing at it.
//
// Insertion order of transitions for a given source state determines the
// neighbor visitation order during search, which in turn determines which of
// several equally short routes [Graph.FindPath] returns. For a fixed graph
// the result is therefore fully deterministic.
//
// A Graph is built once and then treated as read-only: all query methods are
// safe for concurrent use provided no Add calls are in flight. Reloading a
// world map means building a new Graph and swapping the reference, never
// mutating a shared instance.
type Graph struct {
	adjacency map[string][]string
	order     []Transition // raw transitions in insertion order
}

// New creates an empty graph. All queries against it return no neighbors,
// and FindPath succeeds only for start == goal.
func New() *Graph {
	return &Graph{adjacency: make(map[string][]string)}
}

// FromTransitions builds a graph from an ordered sequence of transitions.
// The sequence order is preserved: it governs neighbor visitation order and
// therefore route tie-breaking. An empty or nil sequence yields a valid
// empty graph.
func FromTransitions(transitions []Transition) (*Graph, error) {
	g := New()
	for _, t := range transitions {
		if err := g.Add(t.From, t.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Add appends a directed transition from → to. The target is appended to the
// source's adjacency list, creating the list if absent. Duplicate transitions
// are kept; they are a no-op on route correctness but preserve the raw
// insertion order faithfully.
//
// Returns ErrEmptyState if either identifier is empty.
func (g *Graph) Add(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyState
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	g.order = append(g.order, Transition{From: from, To: to})
	return nil
}

// Neighbors returns the outgoing states of the given state in transition
// insertion order. It returns an empty slice, never an error, when the state
// has no outgoing transitions or is unknown to the graph. The returned slice
// must not be modified.
func (g *Graph) Neighbors(state string) []string {
	return g.adjacency[state]
}

// HasOutgoing reports whether the state has at least one outgoing transition.
// A state with none cannot lead anywhere, so FindPath from it fails fast.
func (g *Graph) HasOutgoing(state string) bool {
	return len(g.adjacency[state]) > 0
}

// Contains reports whether the state is known to the graph, either as a
// transition source or as a transition target.
func (g *Graph) Contains(state string) bool {
	if _, ok := g.adjacency[state]; ok {
		return true
	}
	for _, targets := range g.adjacency {
		if slices.Contains(targets, state) {
			return true
		}
	}
	return false
}

// States returns every state known to the graph (sources and targets),
// sorted for deterministic output. Use Transitions for insertion order.
func (g *Graph) States() []string {
	seen := make(map[string]struct{}, len(g.adjacency))
	for from, targets := range g.adjacency {
		seen[from] = struct{}{}
		for _, to := range targets {
			seen[to] = struct{}{}
		}
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Transitions returns a copy of all transitions in insertion order.
func (g *Graph) Transitions() []Transition {
	return slices.Clone(g.order)
}

// StateCount returns the number of distinct states known to the graph.
func (g *Graph) StateCount() int { return len(g.States()) }

// TransitionCount returns the number of transitions, duplicates included.
func (g *Graph) TransitionCount() int { return len(g.order) }

// Clone returns an independent copy of the graph. The copy preserves
// insertion order, so routes computed against it are identical to routes
// computed against the original.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		adjacency: make(map[string][]string, len(g.adjacency)),
		order:     slices.Clone(g.order),
	}
	for from, targets := range g.adjacency {
		c.adjacency[from] = slices.Clone(targets)
	}
	return c
}
