package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
	"github.com/latt-dev/latt/pkg/render"
)

// exportCommand creates the export command for emitting DOT or SVG
// renderings of a lattice.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a lattice as a DOT or SVG document",
		Long: `Export a lattice as a DOT or SVG document.

The DOT output is a left-to-right digraph with word labels on the
edges, suitable for Graphviz tooling. SVG output renders the same
graph through Graphviz directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}
			return c.runExport(args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with new extension)")

	return cmd
}

func (c *CLI) runExport(input, format, output string) error {
	lat, err := latfile.Load(input)
	if err != nil {
		return err
	}

	dot := render.ToDOT(lat)
	data := []byte(dot)
	if format == "svg" {
		if data, err = render.RenderSVG(dot); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Exported %s", lat.ID())
	printFile(output)
	return nil
}
