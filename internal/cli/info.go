package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
	"github.com/latt-dev/latt/pkg/lattice"
)

// infoCommand creates the info command, which shows lattice statistics.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show lattice statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(lat.ID()))
			printKeyValue("nodes", fmt.Sprintf("%d", lat.NumNodes()))
			printKeyValue("edges", fmt.Sprintf("%d", lat.NumEdges()))
			printKeyValue("start", fmt.Sprintf("%d", lat.Start()))
			printKeyValue("end", fmt.Sprintf("%d", lat.End()))
			printKeyValue("duration", fmt.Sprintf("%.2fs", lat.Duration()))

			density, err := lat.Density(c.Config.SilenceToken)
			switch {
			case err == nil:
				printKeyValue("density", fmt.Sprintf("%.2f words/sec", density))
			case errors.Is(err, lattice.ErrNonPositiveDuration):
				printKeyValue("density", "n/a (zero duration)")
			default:
				return err
			}
			return nil
		},
	}
}
