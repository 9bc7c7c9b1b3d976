package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/latt-dev/latt/pkg/cache"
	"github.com/latt-dev/latt/pkg/latfile"
)

const sampleText = `id utt-443
start 0
end 3
numNodes 4
numEdges 4
node 0 0.00
node 1 0.28
node 2 0.28
node 3 1.50
edge 0 1 hello -64 -12
edge 0 2 -silence- -50 -3
edge 1 3 world -55 -9
edge 2 3 world -58 -9
`

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"text", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing both path and text
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing path/text should fail")
	}

	// Both path and text
	opts = Options{Path: "a.lat", Text: sampleText}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Path and text together should fail")
	}

	opts = Options{Text: sampleText}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Text: sampleText}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.SilenceToken != DefaultSilenceToken {
		t.Errorf("SilenceToken should be %q, got %q", DefaultSilenceToken, opts.SilenceToken)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should default to [text], got %v", opts.Formats)
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Text:    sampleText,
		LMScale: 1.0,
		Formats: []string{FormatText, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	a := result.Analysis
	if a.UtteranceID != "utt-443" {
		t.Errorf("UtteranceID = %q, want utt-443", a.UtteranceID)
	}
	if got := a.Best.Text(); got != "hello world" {
		t.Errorf("best hypothesis = %q, want %q", got, "hello world")
	}
	if a.Best.Total != -140.0 {
		t.Errorf("best weight = %v, want -140", a.Best.Total)
	}
	if a.PathCount != "2" {
		t.Errorf("PathCount = %q, want 2", a.PathCount)
	}
	if a.Density == nil || *a.Density != 2.0 {
		t.Errorf("Density = %v, want 2.0", a.Density)
	}

	text := string(result.Artifacts[FormatText])
	if !strings.Contains(text, "hello world") {
		t.Errorf("text artifact missing hypothesis:\n%s", text)
	}

	var decoded Analysis
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Errorf("json artifact not valid JSON: %v", err)
	}
	if decoded.PathCount != "2" {
		t.Errorf("json artifact PathCount = %q, want 2", decoded.PathCount)
	}

	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact missing digraph header")
	}
}

func TestRunnerExecuteParseError(t *testing.T) {
	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Text: "not a lattice"})
	if err == nil {
		t.Fatal("Execute() on malformed text should fail")
	}
}

func TestAnalyzeSkipCount(t *testing.T) {
	lat, err := latfile.Read(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	a, err := Analyze(context.Background(), lat, Options{Text: sampleText, SkipCount: true})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if a.PathCount != "" {
		t.Errorf("PathCount = %q, want empty when counting skipped", a.PathCount)
	}
	if a.Best.Text() != "hello world" {
		t.Errorf("best hypothesis = %q, want %q", a.Best.Text(), "hello world")
	}
}

func TestRunnerAnalyzeCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fc, quietLogger())
	defer runner.Close()

	lat, err := latfile.Read(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	ctx := context.Background()
	opts := Options{Text: sampleText, LMScale: 1.0}

	first, hit, err := runner.AnalyzeWithCacheInfo(ctx, lat, opts)
	if err != nil {
		t.Fatalf("first AnalyzeWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("first analysis should miss the cache")
	}

	second, hit, err := runner.AnalyzeWithCacheInfo(ctx, lat, opts)
	if err != nil {
		t.Fatalf("second AnalyzeWithCacheInfo() error = %v", err)
	}
	if !hit {
		t.Error("second analysis should hit the cache")
	}
	if second.PathCount != first.PathCount || second.Best.Total != first.Best.Total {
		t.Errorf("cached analysis differs: %+v vs %+v", second, first)
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	if _, hit, err = runner.AnalyzeWithCacheInfo(ctx, lat, opts); err != nil {
		t.Fatalf("refresh AnalyzeWithCacheInfo() error = %v", err)
	} else if hit {
		t.Error("refresh should not report a cache hit")
	}

	// A different scale is a different cache entry.
	scaled, hit, err := runner.AnalyzeWithCacheInfo(ctx, lat, Options{Text: sampleText, LMScale: 0.0})
	if err != nil {
		t.Fatalf("scaled AnalyzeWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("different lmScale should miss the cache")
	}
	if scaled.Best.Total == first.Best.Total {
		t.Errorf("lmScale 0 should change the best weight, both %v", scaled.Best.Total)
	}
}
