// Package render turns world maps into Graphviz visualizations.
//
// The map is drawn as a node-link diagram; when a route is supplied, its
// states and transitions are highlighted so an operator can see at a glance
// which way the automation will walk. [ToDOT] produces the DOT source and
// [RenderSVG] rasterizes it with the embedded Graphviz engine.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/routeworks/wayfind/pkg/statemap"
)

// Options configures DOT generation.
type Options struct {
	// Highlight draws route states and transitions in a distinct color.
	// Without a route it has no effect.
	Highlight bool

	// Rankdir sets the graph direction ("TB" top-to-bottom by default,
	// "LR" for wide shallow worlds).
	Rankdir string
}

// ToDOT converts a state graph to Graphviz DOT format.
// Pass a non-nil route with opts.Highlight to mark it; the route's states get
// a filled accent color and its transitions a bold edge. The resulting DOT
// string can be rendered with [RenderSVG].
func ToDOT(g *statemap.Graph, route statemap.Route, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "TB"
	}

	onRoute := make(map[string]bool, len(route))
	routeStep := make(map[statemap.Transition]bool)
	if opts.Highlight {
		for _, s := range route {
			onRoute[s] = true
		}
		for _, step := range route.Steps() {
			routeStep[step] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph world {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, s := range g.States() {
		attrs := []string{fmt.Sprintf("label=%q", s)}
		if onRoute[s] {
			attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, t := range g.Transitions() {
		if routeStep[t] {
			fmt.Fprintf(&buf, "  %q -> %q [color=blue, penwidth=2];\n", t.From, t.To)
			// Highlight each route step once even if the map repeats the edge
			delete(routeStep, t)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", t.From, t.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
