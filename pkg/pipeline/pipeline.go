// Package pipeline provides the core analysis pipeline for lattice
// processing.
//
// This package implements the complete load → analyze → render pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a lattice from its text serialization
//  2. Analyze: Decode the best hypothesis, count paths, compute density
//  3. Render: Generate output in various formats (text, JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Path:    "utt-443.lat",
//	    LMScale: 1.0,
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/latt-dev/latt/pkg/lattice"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultLMScale is the language-model scale applied when combining
	// edge scores. A scale of 1.0 weighs acoustic and language scores
	// equally.
	DefaultLMScale = 1.0

	// DefaultSilenceToken is the label treated as silence when
	// computing lattice density.
	DefaultSilenceToken = lattice.SilenceToken
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Path or Text must be set: Path reads
	// a lattice file from disk, Text supplies the serialization inline
	// (used by the API, which receives lattices in request bodies).
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`

	// Analyze options
	LMScale      float64 `json:"lm_scale,omitempty"`
	SilenceToken string  `json:"silence_token,omitempty"`
	SkipCount    bool    `json:"skip_count,omitempty"` // Skip path counting (decode only)
	Refresh      bool    `json:"refresh,omitempty"`    // Bypass the cache and recompute

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lattice is the loaded lattice.
	Lattice *lattice.Lattice

	// Analysis contains the decode, count, and density results.
	Analysis *Analysis

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the analysis came from cache.
	CacheInfo CacheInfo
}

// Analysis is the cacheable outcome of analyzing one lattice. All
// fields are deterministic functions of the lattice content and the
// options, which is what makes the result safe to cache.
type Analysis struct {
	UtteranceID string  `json:"utterance_id"`
	NumNodes    int     `json:"num_nodes"`
	NumEdges    int     `json:"num_edges"`
	DurationSec float64 `json:"duration_sec"`
	LMScale     float64 `json:"lm_scale"`

	// Best is the lowest-weight hypothesis through the lattice.
	Best lattice.Hypothesis `json:"best"`

	// PathCount is the exact number of distinct start-to-end paths,
	// serialized as a decimal string because it may exceed int64.
	// Empty when counting was skipped.
	PathCount string `json:"path_count,omitempty"`

	// Density is the non-silence word rate in words per second.
	// Nil when the lattice spans no positive duration.
	Density *float64 `json:"density,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	AnalysisHit bool // Whether the analysis came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForAnalyze(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && o.Text == "" {
		return fmt.Errorf("path or text is required")
	}
	if o.Path != "" && o.Text != "" {
		return fmt.Errorf("path and text are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForAnalyze applies analysis defaults and checks the scale.
func (o *Options) ValidateForAnalyze() error {
	if o.SilenceToken == "" {
		o.SilenceToken = DefaultSilenceToken
	}
	if math.IsNaN(o.LMScale) || math.IsInf(o.LMScale, 0) {
		return fmt.Errorf("lm_scale must be finite, got %v", o.LMScale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
