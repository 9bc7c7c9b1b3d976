package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/pipeline"
)

// decodeOpts holds the command-line flags for the decode command.
type decodeOpts struct {
	lmScale float64 // language-model scale for combined weights
	scores  bool    // show per-word weights
	output  string  // write artifact to file instead of styled stdout
	format  string  // artifact format when --output is set
	noCache bool    // disable result caching
	refresh bool    // recompute even when cached
}

// decodeCommand creates the decode command, which finds the
// lowest-weight word sequence from start to end.
func (c *CLI) decodeCommand() *cobra.Command {
	opts := decodeOpts{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode the best word sequence from a lattice",
		Long: `Decode the best word sequence from a lattice.

Each edge carries an acoustic and a language-model score; the combined
weight is amScore + lmScale*lmScore. The decoder finds the path from
the start node to the end node with the lowest total weight. When two
paths tie, the result is still deterministic.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lm-scale") {
				opts.lmScale = c.Config.LMScale
			}
			return c.runDecode(cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.lmScale, "lm-scale", pipeline.DefaultLMScale, "language model scale")
	cmd.Flags().BoolVar(&opts.scores, "scores", false, "show per-word weights")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write result to file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format with -o: text, json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

func (c *CLI) runDecode(cmd *cobra.Command, path string, opts decodeOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.analysisOptions(path, opts.lmScale)
	popts.Refresh = opts.refresh
	popts.SkipCount = true
	popts.Formats = []string{opts.format}

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, result.Artifacts[opts.format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Decoded %s", result.Analysis.UtteranceID)
		printFile(opts.output)
		return nil
	}

	a := result.Analysis
	printSuccess("Decoded %s (weight %.2f)", a.UtteranceID, a.Best.Total)
	printHypothesis(a.Best.Text())
	if opts.scores {
		for _, w := range a.Best.Words {
			printDetail("%-20s %.2f", w.Word, w.Weight)
		}
	}
	printStats(a.NumNodes, a.NumEdges, result.CacheInfo.AnalysisHit)
	return nil
}
