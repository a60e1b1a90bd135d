package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routeworks/wayfind/pkg/planner"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	start   string // start state
	goal    string // goal state
	output  string // artifact output path (single format) or base path
	noCache bool   // disable caching
	refresh bool   // bypass cache and recompute
	quiet   bool   // print only the route, one state per line
}

// newPlanCmd creates the plan command for computing routes.
func newPlanCmd() *cobra.Command {
	var formatsStr string
	opts := planOpts{}

	cmd := &cobra.Command{
		Use:   "plan [map-file]",
		Short: "Compute the shortest route between two states",
		Long: `Compute the shortest route between two states of a world map.

The map is a JSON file or a TOML manifest describing the states of an
application and the transitions between them. The route printed is the one
with the fewest transitions; when several are equally short, the map's
transition order decides.

When no route exists the command reports that and exits with status 0;
"no route" is an answer, not a failure.

Examples:
  wayfind plan game.json --start login --goal match
  wayfind plan game.toml -s login -g match -f dot,svg -o route`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var formats []string
			if formatsStr != "" {
				formats = parseFormats(formatsStr)
				if err := planner.ValidateFormats(formats); err != nil {
					return err
				}
			}
			return runPlan(cmd, args[0], &opts, formats)
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "start state (required)")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "goal state (required)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "artifact format(s): json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "artifact output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the route, one state per line")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// runPlan executes the pipeline and prints the route.
func runPlan(cmd *cobra.Command, mapPath string, opts *planOpts, formats []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, planner.Options{
		MapPath:   mapPath,
		Start:     opts.start,
		Goal:      opts.goal,
		Formats:   formats,
		Highlight: true,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if !result.Found {
		if opts.quiet {
			return nil
		}
		printError("No route from %s to %s", StyleHighlight.Render(opts.start), StyleHighlight.Render(opts.goal))
		printMapStats(result.Stats.StateCount, result.Stats.TransitionCount)
		return nil
	}

	if opts.quiet {
		for _, s := range result.Route {
			fmt.Println(s)
		}
		return nil
	}

	prog.done(fmt.Sprintf("Planned route in %d hops", result.Route.Hops()))

	printSuccess("%s", formatRoute(result.Route))
	printMapStats(result.Stats.StateCount, result.Stats.TransitionCount)
	printCacheStatus(result.CacheInfo.RouteHit)

	if len(formats) > 0 {
		return writeArtifacts(result.Artifacts, formats, mapPath, opts.output, result.CacheInfo.RenderHit)
	}
	return nil
}
