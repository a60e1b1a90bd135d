// Package statemap provides the state-graph pathfinder at the core of
// wayfind: a directed graph of named world states connected by transitions,
// and a breadth-first search that computes the shortest sequence of
// transitions from a current state to a goal state.
//
// # Model
//
// A state is an opaque identifier naming a node in the automation's world
// model. A transition is a directed, unweighted edge between two states. The
// [Graph] owns an adjacency representation built once from an ordered list of
// [Transition] records; insertion order determines neighbor visitation order
// during search and therefore which of several equally short routes is
// returned.
//
// # Routing
//
// [Graph.FindPath] returns a [Route], the ordered state sequence from start
// to goal, or [ErrNoRoute]. No-route is the single non-success outcome: an
// unknown start, an unknown goal, and a disconnected graph all degrade to it
// uniformly, never to a panic or a distinct fatal error. Control loops call
// FindPath repeatedly as the current state changes and handle ErrNoRoute as
// an ordinary, recoverable condition.
//
//	g, _ := statemap.FromTransitions([]statemap.Transition{
//	    {From: "login", To: "lobby"},
//	    {From: "lobby", To: "match"},
//	})
//	route, err := g.FindPath("login", "match")
//	if errors.Is(err, statemap.ErrNoRoute) {
//	    // nothing actionable right now
//	}
//	// route == ["login", "lobby", "match"]
//
// # Concurrency
//
// A Graph is immutable once built. FindPath is a pure function bounded by
// O(states + transitions), so any number of goroutines may query the same
// Graph concurrently. Reloading the world map means constructing a new Graph
// and swapping the reference atomically; in-flight queries complete against
// the instance they were given.
package statemap
