package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	lmScale  float64 // language-model scale for combined weights
	noCache  bool    // disable result caching
	refresh  bool    // recompute even when cached
	failFast bool    // stop at the first failing file
}

// batchCommand creates the batch command, which analyzes many lattice
// files in one run.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Analyze many lattice files at once",
		Long: `Analyze many lattice files at once.

Each file is decoded and counted; one summary line is printed per
file. Analysis results are cached, so re-running a batch only pays for
files that changed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lm-scale") {
				opts.lmScale = c.Config.LMScale
			}
			return c.runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.lmScale, "lm-scale", pipeline.DefaultLMScale, "language model scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failure")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, paths []string, opts batchOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ctx := cmd.Context()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %d lattices...", len(paths)))
	spinner.Start()

	type row struct {
		path     string
		analysis *pipeline.Analysis
		cached   bool
		err      error
	}

	rows := make([]row, 0, len(paths))
	failures := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}

		popts := c.analysisOptions(path, opts.lmScale)
		popts.Refresh = opts.refresh

		lat, err := runner.Load(ctx, popts)
		if err != nil {
			if opts.failFast {
				spinner.StopWithError(fmt.Sprintf("Failed on %s", path))
				return err
			}
			rows = append(rows, row{path: path, err: err})
			failures++
			continue
		}

		analysis, hit, err := runner.AnalyzeWithCacheInfo(ctx, lat, popts)
		if err != nil {
			if opts.failFast {
				spinner.StopWithError(fmt.Sprintf("Failed on %s", path))
				return err
			}
			rows = append(rows, row{path: path, err: err})
			failures++
			continue
		}
		rows = append(rows, row{path: path, analysis: analysis, cached: hit})
	}

	if spinner.Cancelled() {
		return ctx.Err()
	}
	spinner.Stop()

	for _, r := range rows {
		if r.err != nil {
			printError("%s: %v", r.path, r.err)
			continue
		}
		status := iconFresh
		if r.cached {
			status = iconCached
		}
		printSuccess("%s: %s", r.analysis.UtteranceID, r.analysis.Best.Text())
		printDetail("weight %.2f · paths %s · %s", r.analysis.Best.Total, r.analysis.PathCount, status)
	}

	if failures > 0 {
		printWarning("%d of %d lattices failed", failures, len(paths))
		return fmt.Errorf("%d lattices failed", failures)
	}
	printInfo("Analyzed %d lattices", len(paths))
	return nil
}
