// Package render exports lattices as Graphviz documents.
//
// ToDOT produces a left-to-right digraph with one line per edge,
// labeled with the edge's word. RenderSVG runs the DOT text through
// Graphviz for an image suitable for embedding or saving.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/latt-dev/latt/pkg/lattice"
)

// ToDOT converts a lattice to Graphviz DOT format. Nodes keep their
// integer indices; each edge is labeled with its word. The layout is
// left to right so the time axis reads naturally.
func ToDOT(lat *lattice.Lattice) string {
	var buf bytes.Buffer
	buf.WriteString("digraph g {\n")
	buf.WriteString("   rankdir=\"LR\"\n")

	for i := 0; i < lat.NumNodes(); i++ {
		for _, n := range lat.Outgoing(i) {
			fmt.Fprintf(&buf, "   %d -> %d [label = %q]\n", i, n.To, n.Edge.Label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
