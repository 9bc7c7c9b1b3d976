package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/latt-dev/latt/pkg/cache"
	"github.com/latt-dev/latt/pkg/latfile"
	"github.com/latt-dev/latt/pkg/lattice"
	"github.com/latt-dev/latt/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete load → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	lat, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Lattice = lat
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = lat.NumNodes()
	result.Stats.EdgeCount = lat.NumEdges()

	r.Logger.Info("loaded lattice",
		"id", lat.ID(),
		"nodes", lat.NumNodes(),
		"edges", lat.NumEdges(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	analysis, hit, err := r.AnalyzeWithCacheInfo(ctx, lat, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.AnalysisHit = hit

	r.Logger.Info("analyzed lattice",
		"words", len(analysis.Best.Words),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(lat, analysis, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the lattice named by the options, from disk or from the
// inline text.
func (r *Runner) Load(ctx context.Context, opts Options) (*lattice.Lattice, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	observability.Analysis().OnLoadStart(ctx, opts.Path)

	start := time.Now()
	var (
		lat *lattice.Lattice
		err error
	)
	if opts.Path != "" {
		lat, err = latfile.Load(opts.Path)
	} else {
		lat, err = latfile.Read(strings.NewReader(opts.Text))
	}

	nodes, edges := 0, 0
	if lat != nil {
		nodes, edges = lat.NumNodes(), lat.NumEdges()
	}
	observability.Analysis().OnLoadComplete(ctx, opts.Path, nodes, edges, time.Since(start), err)
	return lat, err
}

// AnalyzeWithCacheInfo computes the analysis for a lattice with caching
// and returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, lat *lattice.Lattice, opts Options) (*Analysis, bool, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, false, err
	}

	// The cache key is derived from the canonical serialization, so two
	// loads of equivalent lattices share one entry.
	var buf bytes.Buffer
	if err := latfile.Write(&buf, lat); err != nil {
		return nil, false, fmt.Errorf("serialize lattice for cache key: %w", err)
	}
	cacheKey := cache.AnalysisKey(buf.Bytes(), opts.LMScale, opts.SilenceToken)

	// Try cache first (unless refresh requested). A cached full
	// analysis also satisfies a skip-count request.
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "analysis")
				return &cached, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	analysis, err := Analyze(ctx, lat, opts)
	if err != nil {
		return nil, false, err
	}

	// Skip-count results are partial, so they never overwrite a full
	// cached analysis.
	if !opts.SkipCount {
		if data, err := json.Marshal(analysis); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis)
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}

	return analysis, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, lat *lattice.Lattice, opts Options) (*Analysis, error) {
	analysis, _, err := r.AnalyzeWithCacheInfo(ctx, lat, opts)
	return analysis, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
