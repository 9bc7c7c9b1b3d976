package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/latt-dev/latt/pkg/lattice"
	"github.com/latt-dev/latt/pkg/render"
)

// Render produces the requested output formats for an analyzed lattice.
// The returned map is keyed by format name.
func Render(lat *lattice.Lattice, analysis *Analysis, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(lat, analysis, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(lat *lattice.Lattice, analysis *Analysis, format string) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(analysis), nil
	case FormatJSON:
		return json.MarshalIndent(analysis, "", "  ")
	case FormatDOT:
		return []byte(render.ToDOT(lat)), nil
	case FormatSVG:
		return render.RenderSVG(render.ToDOT(lat))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

func renderText(a *Analysis) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "utterance: %s\n", a.UtteranceID)
	fmt.Fprintf(&buf, "best:      %s\n", a.Best.Text())
	fmt.Fprintf(&buf, "weight:    %.2f\n", a.Best.Total)
	if a.PathCount != "" {
		fmt.Fprintf(&buf, "paths:     %s\n", a.PathCount)
	}
	if a.Density != nil {
		fmt.Fprintf(&buf, "density:   %.2f words/sec\n", *a.Density)
	}
	return buf.Bytes()
}
