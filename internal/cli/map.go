package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routeworks/wayfind/pkg/worldmap"
)

// newMapCmd creates the map command with its subcommands.
func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Validate and inspect world map files",
	}

	cmd.AddCommand(newMapValidateCmd())
	cmd.AddCommand(newMapShowCmd())
	cmd.AddCommand(newMapConvertCmd())

	return cmd
}

// newMapValidateCmd creates the "map validate" subcommand.
func newMapValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [map-file]",
		Short: "Check a map file for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMap(args[0])
			if err != nil {
				printError("%v", err)
				return err
			}
			printSuccess("%s is valid", args[0])
			printMapStats(countStates(m), len(m.Transitions))
			return nil
		},
	}
}

// newMapShowCmd creates the "map show" subcommand.
func newMapShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [map-file]",
		Short: "Print the states and transitions of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMap(args[0])
			if err != nil {
				return err
			}

			g, err := worldmap.ToGraph(m)
			if err != nil {
				return err
			}

			name := m.Name
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			fmt.Println(StyleTitle.Render(name))
			printMapStats(g.StateCount(), g.TransitionCount())
			fmt.Println()

			for _, s := range g.States() {
				neighbors := g.Neighbors(s)
				if len(neighbors) == 0 {
					printKeyValue(s, StyleDim.Render("(no outgoing transitions)"))
					continue
				}
				printKeyValue(s, strings.Join(neighbors, ", "))
			}
			return nil
		},
	}
}

// newMapConvertCmd creates the "map convert" subcommand, which turns a TOML
// manifest into the canonical JSON map format.
func newMapConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [manifest.toml]",
		Short: "Convert a TOML manifest to a JSON map file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := worldmap.ReadManifestFile(args[0])
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := worldmap.WriteMap(m, out); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Wrote %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// readMap loads a map file, dispatching on the file extension.
func readMap(path string) (worldmap.Map, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return worldmap.ReadManifestFile(path)
	}
	return worldmap.ReadMapFile(path)
}

// countStates counts distinct states across the map's transitions and
// declared state list.
func countStates(m worldmap.Map) int {
	seen := make(map[string]struct{})
	for _, s := range m.States {
		seen[s.ID] = struct{}{}
	}
	for _, t := range m.Transitions {
		seen[t.From] = struct{}{}
		seen[t.To] = struct{}{}
	}
	return len(seen)
}
