package cli

import (
	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
)

// saveCommand creates the save command, which rewrites a lattice file
// in canonical form.
func (c *CLI) saveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Rewrite a lattice file in canonical form",
		Long: `Rewrite a lattice file in canonical form.

The writer orders node lines by index and edge lines by (source,
destination), so any two equivalent lattices serialize to identical
bytes. Loading and saving a canonical file is a byte-exact round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = args[0]
			}
			if err := latfile.Save(output, lat); err != nil {
				return err
			}

			printSuccess("Saved %s", lat.ID())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite in place)")

	return cmd
}
