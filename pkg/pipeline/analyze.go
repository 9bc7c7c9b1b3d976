package pipeline

import (
	"context"
	"time"

	"github.com/latt-dev/latt/pkg/lattice"
	"github.com/latt-dev/latt/pkg/observability"
)

// Analyze runs the analysis stage without caching: best-path decode,
// exact path count, and density. Use Runner.Analyze for the cached
// variant.
func Analyze(ctx context.Context, lat *lattice.Lattice, opts Options) (*Analysis, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		UtteranceID: lat.ID(),
		NumNodes:    lat.NumNodes(),
		NumEdges:    lat.NumEdges(),
		DurationSec: lat.Duration(),
		LMScale:     opts.LMScale,
	}

	observability.Analysis().OnDecodeStart(ctx, lat.ID(), opts.LMScale)
	decodeStart := time.Now()
	best, err := lat.Decode(opts.LMScale)
	observability.Analysis().OnDecodeComplete(ctx, lat.ID(), wordCount(best), time.Since(decodeStart), err)
	if err != nil {
		return nil, err
	}
	analysis.Best = *best

	if !opts.SkipCount {
		observability.Analysis().OnCountStart(ctx, lat.ID())
		countStart := time.Now()
		n, err := lat.CountPaths()
		digits := 0
		if n != nil {
			digits = len(n.String())
		}
		observability.Analysis().OnCountComplete(ctx, lat.ID(), digits, time.Since(countStart), err)
		if err != nil {
			return nil, err
		}
		analysis.PathCount = n.String()
	}

	// Density is undefined for lattices spanning no time.
	if lat.Duration() > 0 {
		d, err := lat.Density(opts.SilenceToken)
		if err != nil {
			return nil, err
		}
		analysis.Density = &d
	}

	return analysis, nil
}

func wordCount(h *lattice.Hypothesis) int {
	if h == nil {
		return 0
	}
	return len(h.Words)
}
