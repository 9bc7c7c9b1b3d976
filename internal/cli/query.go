package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
	"github.com/latt-dev/latt/pkg/lattice"
)

// queryCommand creates the query command with time-indexed subcommands.
func (c *CLI) queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Time-indexed lattice lookups",
	}

	cmd.AddCommand(c.queryWordsAtCommand())
	cmd.AddCommand(c.queryHitsCommand())

	return cmd
}

// queryWordsAtCommand creates the "query words-at" subcommand, which
// lists words spanning zero duration at an exact time point.
func (c *CLI) queryWordsAtCommand() *cobra.Command {
	var at float64

	cmd := &cobra.Command{
		Use:   "words-at [file]",
		Short: "List words active at an exact time point",
		Long: `List words active at an exact time point.

A word is active at time t when both endpoints of its edge are stamped
exactly t, i.e. the word spans zero duration at that instant. The time
must match a node timestamp exactly; no tolerance is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			words := lat.WordsAtTime(at)
			if len(words) == 0 {
				printInfo("No words at t=%.2f", at)
				return nil
			}

			sorted := make([]string, 0, len(words))
			for w := range words {
				sorted = append(sorted, w)
			}
			sort.Strings(sorted)
			for _, w := range sorted {
				fmt.Println(w)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&at, "time", "t", 0, "time point in seconds")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

// queryHitsCommand creates the "query hits" subcommand, which reports
// every occurrence of a word as edge midpoint times.
func (c *CLI) queryHitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hits [file] [word]",
		Short: "Report the midpoint time of every occurrence of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			mids := lat.Occurrences(args[1])
			if len(mids) == 0 {
				printInfo("%q does not occur in %s", args[1], lat.ID())
				return nil
			}
			fmt.Println(lattice.FormatOccurrences(mids))
			return nil
		},
	}
}
