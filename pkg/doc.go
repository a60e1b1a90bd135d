// Package pkg provides the core libraries for wayfind route planning.
//
// # Overview
//
// Wayfind models an application's screens as a world map: named states
// connected by directed transitions. Given a start and a goal, it computes
// the route with the fewest transitions. The pkg directory is organized into:
//
//  1. [statemap] - The state graph and shortest-route search
//  2. [worldmap] - Map files (JSON) and manifests (TOML)
//  3. [planner] - Orchestration (load → plan → render) with caching
//  4. [render] - Graphviz DOT and SVG output
//  5. [cache] - File, Redis, and null cache backends
//  6. [store] - Persistent map storage (MongoDB, in-memory)
//
// # Architecture
//
// The typical data flow through wayfind:
//
//	Map file / manifest / store
//	         ↓
//	    [worldmap] package (parse and validate)
//	         ↓
//	    [statemap] package (graph structure + route search)
//	         ↓
//	    [render] package (DOT / SVG diagrams)
//
// # Quick Start
//
// Plan a route through a map file:
//
//	import (
//	    "context"
//	    "github.com/routeworks/wayfind/pkg/planner"
//	)
//
//	runner := planner.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), planner.Options{
//	    MapPath: "game.json",
//	    Start:   "login",
//	    Goal:    "match",
//	})
package pkg
