package lattice

import (
	"errors"
	"testing"
)

// queryDef is a small lattice with two zero-duration edges at t=1
// (same label, so the word set must deduplicate) and a repeated word
// with distinct midpoints.
func queryDef() Def {
	return Def{
		ID:    "query",
		Start: 0,
		End:   5,
		Times: []float64{0, 1, 1, 1, 3, 5},
		Edges: []EdgeDef{
			{From: 0, To: 1, Label: "the"},
			{From: 1, To: 2, Label: "uh"},       // zero-duration at t=1
			{From: 2, To: 3, Label: "uh"},       // zero-duration at t=1, duplicate label
			{From: 1, To: 3, Label: "pause"},    // zero-duration at t=1
			{From: 3, To: 4, Label: "the"},      // midpoint 2.0
			{From: 4, To: 5, Label: SilenceToken},
		},
	}
}

func TestWordsAtTime(t *testing.T) {
	l := buildTest(t, queryDef())

	tests := []struct {
		name string
		time float64
		want []string
	}{
		{name: "no node at time", time: 2.5, want: nil},
		{name: "node exists but no zero-duration edge", time: 0, want: nil},
		{name: "deduplicated set", time: 1, want: []string{"uh", "pause"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.WordsAtTime(tt.time)
			if len(got) != len(tt.want) {
				t.Fatalf("WordsAtTime(%v) = %v, want %v", tt.time, got, tt.want)
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("WordsAtTime(%v) missing %q", tt.time, w)
				}
			}
		})
	}
}

func TestOccurrences(t *testing.T) {
	l := buildTest(t, queryDef())

	mids := l.Occurrences("the")
	want := []float64{0.5, 2.0}
	if len(mids) != len(want) {
		t.Fatalf("Occurrences() = %v, want %v", mids, want)
	}
	for i := range want {
		if mids[i] != want[i] {
			t.Errorf("Occurrences()[%d] = %v, want %v", i, mids[i], want[i])
		}
	}

	if got := l.Occurrences("absent"); got != nil {
		t.Errorf("Occurrences(absent) = %v, want nil", got)
	}
}

func TestFormatOccurrences(t *testing.T) {
	if got := FormatOccurrences([]float64{0.5, 2, 12.345}); got != "0.50 2.00 12.35" {
		t.Errorf("FormatOccurrences() = %q, want %q", got, "0.50 2.00 12.35")
	}
	if got := FormatOccurrences(nil); got != "" {
		t.Errorf("FormatOccurrences(nil) = %q, want empty", got)
	}
}

func TestDensity(t *testing.T) {
	// 3 non-silence edges, 1 silence edge, 5 seconds start to end.
	l := buildTest(t, Def{
		End:   3,
		Times: []float64{0, 1, 2, 5},
		Edges: []EdgeDef{
			{From: 0, To: 1, Label: "a"},
			{From: 1, To: 2, Label: SilenceToken},
			{From: 1, To: 3, Label: "b"},
			{From: 2, To: 3, Label: "c"},
		},
	})

	got, err := l.Density(SilenceToken)
	if err != nil {
		t.Fatalf("Density() error = %v", err)
	}
	if got != 0.6 {
		t.Errorf("Density() = %v, want 0.6", got)
	}
}

func TestDensityNonPositiveDuration(t *testing.T) {
	l := buildTest(t, Def{
		Start: 0,
		End:   0,
		Times: []float64{0, 1},
		Edges: []EdgeDef{{From: 0, To: 1, Label: "a"}},
	})

	if _, err := l.Density(SilenceToken); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("Density() error = %v, want ErrNonPositiveDuration", err)
	}
}
