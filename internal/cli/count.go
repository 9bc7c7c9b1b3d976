package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
)

// countCommand creates the count command, which reports the exact
// number of distinct start-to-end paths.
func (c *CLI) countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count [file]",
		Short: "Count the distinct paths through a lattice",
		Long: `Count the distinct paths through a lattice.

The count is exact: it is computed with arbitrary-precision integers,
so lattices with astronomically many paths report the true number
rather than overflowing or approximating.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			n, err := lat.CountPaths()
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Counted paths in %s", lat.ID()))

			fmt.Println(n.String())
			return nil
		},
	}
}
