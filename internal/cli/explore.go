package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/routeworks/wayfind/pkg/planner"
	"github.com/routeworks/wayfind/pkg/worldmap"
)

// newExploreCmd creates the explore command for interactive route planning.
func newExploreCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "explore [map-file]",
		Short: "Interactively pick start and goal states and plan a route",
		Long: `Explore a world map interactively.

The command lists the map's states; pick a start state and a goal state,
and the shortest route between them is planned and printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// runExplore drives the two state pickers and plans the chosen route.
func runExplore(cmd *cobra.Command, mapPath string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	m, err := readMap(mapPath)
	if err != nil {
		return err
	}
	g, err := worldmap.ToGraph(m)
	if err != nil {
		return err
	}

	states := make([]stateInfo, 0, g.StateCount())
	for _, s := range g.States() {
		states = append(states, stateInfo{ID: s, Outgoing: len(g.Neighbors(s))})
	}
	if len(states) == 0 {
		printInfo("Map has no states")
		return nil
	}

	start, err := pickState("Select Start State", states)
	if err != nil || start == "" {
		return err
	}
	goal, err := pickState("Select Goal State", states)
	if err != nil || goal == "" {
		return err
	}

	runner := newRunner(ctx, noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, planner.Options{
		Map:    &m,
		Start:  start,
		Goal:   goal,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	if !result.Found {
		printError("No route from %s to %s", StyleHighlight.Render(start), StyleHighlight.Render(goal))
		return nil
	}
	printSuccess("%s", formatRoute(result.Route))
	printDetail("%d hops", result.Route.Hops())
	return nil
}

// pickState runs the state picker and returns the chosen state ID.
// An empty string means the user quit without choosing.
func pickState(title string, states []stateInfo) (string, error) {
	model := NewStateListModel(title, states)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("interactive picker: %w", err)
	}
	picked, ok := final.(StateListModel)
	if !ok {
		return "", nil
	}
	return picked.Selected, nil
}
