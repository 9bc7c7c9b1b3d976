package render

import (
	"strings"
	"testing"

	"github.com/latt-dev/latt/pkg/lattice"
)

func TestToDOT(t *testing.T) {
	lat, err := lattice.Build(lattice.Def{
		ID:    "utt1",
		End:   2,
		Times: []float64{0, 1, 2},
		Edges: []lattice.EdgeDef{
			{From: 0, To: 1, Label: "hello"},
			{From: 1, To: 2, Label: "to_the"},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dot := ToDOT(lat)

	if !strings.HasPrefix(dot, "digraph g {") {
		t.Errorf("DOT missing digraph prefix:\n%s", dot)
	}
	if !strings.Contains(dot, `rankdir="LR"`) {
		t.Errorf("DOT missing LR rankdir:\n%s", dot)
	}
	for _, want := range []string{
		`0 -> 1 [label = "hello"]`,
		`1 -> 2 [label = "to_the"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Errorf("DOT not closed:\n%s", dot)
	}
}

func TestToDOTEdgeCount(t *testing.T) {
	lat, err := lattice.Build(lattice.Def{
		End:   3,
		Times: []float64{0, 1, 1, 2},
		Edges: []lattice.EdgeDef{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 2, Label: "b"},
			{From: 1, To: 3, Label: "c"},
			{From: 2, To: 3, Label: "d"},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := strings.Count(ToDOT(lat), "->"); got != 4 {
		t.Errorf("edge lines = %d, want 4", got)
	}
}
