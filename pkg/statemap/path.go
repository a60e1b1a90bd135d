package statemap

import "slices"

// Route is an ordered sequence of states from a start to a goal, each
// consecutive pair connected by a transition. A route always has length ≥ 1;
// a single-element route means start == goal and zero transitions are needed.
type Route []string

// Start returns the first state of the route.
func (r Route) Start() string { return r[0] }

// Goal returns the last state of the route.
func (r Route) Goal() string { return r[len(r)-1] }

// Hops returns the number of transitions the route requires.
func (r Route) Hops() int { return len(r) - 1 }

// Steps returns the route as consecutive (from, to) transitions, ready to be
// handed to an action dispatcher one edge at a time. A single-element route
// yields no steps.
func (r Route) Steps() []Transition {
	if len(r) < 2 {
		return nil
	}
	steps := make([]Transition, len(r)-1)
	for i := range steps {
		steps[i] = Transition{From: r[i], To: r[i+1]}
	}
	return steps
}

// FindPath computes the shortest route (fewest transitions) from start to
// goal using breadth-first search. BFS is the right tool here: transitions
// are unweighted and there is no heuristic distance information, so
// level-order traversal is the only strategy that guarantees a minimum-hop
// path.
//
// When several shortest routes exist, the one returned is determined solely
// by transition insertion order at each branching point: the first route
// discovered in BFS order wins. Repeated calls with the same graph and
// arguments return an identical route.
//
// The only failure mode is ErrNoRoute, covering unknown start, unknown goal,
// and disconnected components uniformly. FindPath is a pure function of
// (graph, start, goal): it allocates only its own queue and visited set, so
// concurrent calls against the same graph need no coordination.
func (g *Graph) FindPath(start, goal string) (Route, error) {
	if start == goal {
		return Route{start}, nil
	}
	// A start with no outgoing transitions cannot lead anywhere, whether it
	// is a known sink or entirely absent from the map.
	if !g.HasOutgoing(start) {
		return nil, ErrNoRoute
	}

	type entry struct {
		state string
		path  Route
	}

	visited := map[string]struct{}{start: {}}
	queue := []entry{{state: start, path: Route{start}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.Neighbors(cur.state) {
			if next == goal {
				route := slices.Clone(cur.path)
				return append(route, goal), nil
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			path := slices.Clone(cur.path)
			queue = append(queue, entry{state: next, path: append(path, next)})
		}
	}

	return nil, ErrNoRoute
}
