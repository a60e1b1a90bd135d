package cli

import (
	"github.com/spf13/cobra"

	"github.com/routeworks/wayfind/pkg/planner"
	"github.com/routeworks/wayfind/pkg/worldmap"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple formats)
	start   string // optional start state for route highlighting
	goal    string // optional goal state for route highlighting
	rankdir string // graph direction: TB or LR
	noCache bool   // disable caching
}

// newRenderCmd creates the render command for drawing world maps.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [map-file]",
		Short: "Render a world map as a DOT or SVG diagram",
		Long: `Render a world map as a Graphviz diagram.

With --start and --goal, the shortest route between them is planned and
highlighted in the drawing.

Examples:
  wayfind render game.json                          # game.dot
  wayfind render game.json -f svg -o game.svg
  wayfind render game.json -f dot,svg -s login -g match`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := planner.ValidateFormats(formats); err != nil {
				return err
			}
			return runRender(cmd, args[0], &opts, formats)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "start state for route highlighting")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "goal state for route highlighting")
	cmd.Flags().StringVar(&opts.rankdir, "rankdir", "", "graph direction: TB (default), LR")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the map and writes the requested artifacts.
func runRender(cmd *cobra.Command, mapPath string, opts *renderOpts, formats []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	highlight := opts.start != "" && opts.goal != ""
	planOpts := planner.Options{
		MapPath:   mapPath,
		Start:     opts.start,
		Goal:      opts.goal,
		Formats:   formats,
		Highlight: highlight,
		Rankdir:   opts.rankdir,
		Logger:    logger,
	}

	if highlight {
		result, err := runner.Execute(ctx, planOpts)
		if err != nil {
			return err
		}
		if !result.Found {
			printError("No route from %s to %s; rendering without highlight", opts.start, opts.goal)
		}
		return writeArtifacts(result.Artifacts, formats, mapPath, opts.output, result.CacheInfo.RenderHit)
	}

	m, err := runner.Load(ctx, planOpts)
	if err != nil {
		return err
	}
	g, err := worldmap.ToGraph(m)
	if err != nil {
		return err
	}

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, nil, "", planOpts)
	if err != nil {
		return err
	}
	return writeArtifacts(artifacts, formats, mapPath, opts.output, cacheHit)
}
