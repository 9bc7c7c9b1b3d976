package lattice

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNonPositiveDuration is returned by [Lattice.Density] when the end
// node's timestamp does not lie strictly after the start node's.
var ErrNonPositiveDuration = errors.New("non-positive duration between start and end nodes")

// WordsAtTime returns the set of labels of every edge whose source and
// destination timestamps both equal t exactly, i.e. zero-duration
// spans located at t. The set is deduplicated and unordered. If no
// node timestamp equals t the set is empty.
func (l *Lattice) WordsAtTime(t float64) map[string]bool {
	words := make(map[string]bool)
	for i := range l.times {
		if l.times[i] != t {
			continue
		}
		for j := range l.times {
			if l.times[j] != t {
				continue
			}
			if e := l.adj[i][j]; e != nil {
				words[e.Label] = true
			}
		}
	}
	return words
}

// Occurrences returns the midpoint time of every edge labeled word,
// sorted ascending. The midpoint is halfway between the source and
// destination timestamps. Returns nil if the word never occurs.
func (l *Lattice) Occurrences(word string) []float64 {
	var mids []float64
	for i := range l.adj {
		for j, e := range l.adj[i] {
			if e != nil && e.Label == word {
				mids = append(mids, (l.times[i]+l.times[j])/2)
			}
		}
	}
	sort.Float64s(mids)
	return mids
}

// FormatOccurrences renders midpoints to two decimal places,
// space-separated on one line. Returns the empty string for an empty
// slice, so callers printing it emit nothing for absent words.
func FormatOccurrences(mids []float64) string {
	if len(mids) == 0 {
		return ""
	}
	parts := make([]string, len(mids))
	for i, m := range mids {
		parts[i] = fmt.Sprintf("%.2f", m)
	}
	return strings.Join(parts, " ")
}

// Density returns the lattice density: the number of edges whose label
// is not silenceToken, divided by the elapsed seconds between the
// start and end nodes. A multiword label counts as one word.
//
// Returns ErrNonPositiveDuration when the elapsed time is zero or
// negative, for which the metric is undefined.
func (l *Lattice) Density(silenceToken string) (float64, error) {
	duration := l.Duration()
	if duration <= 0 {
		return 0, ErrNonPositiveDuration
	}

	words := 0
	for i := range l.adj {
		for _, e := range l.adj[i] {
			if e != nil && e.Label != silenceToken {
				words++
			}
		}
	}
	return float64(words) / duration, nil
}
