package lattice

import (
	"fmt"
	"strings"
)

// ScoredWord is one word of a hypothesis together with the combined
// weight of the edge that produced it.
type ScoredWord struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// Hypothesis is one candidate word sequence through the lattice: the
// words in path order, each with its per-edge combined weight, plus
// the total path cost. This is the contract the decoder exposes to any
// rendering or reporting collaborator.
type Hypothesis struct {
	Words []ScoredWord `json:"words"`
	Total float64      `json:"total"`
}

func (h *Hypothesis) append(word string, weight float64) {
	h.Words = append(h.Words, ScoredWord{Word: word, Weight: weight})
}

// Text returns the bare word sequence, space-separated.
func (h *Hypothesis) Text() string {
	words := make([]string, len(h.Words))
	for i, w := range h.Words {
		words[i] = w.Word
	}
	return strings.Join(words, " ")
}

// String renders the hypothesis one word per line with its weight,
// followed by the total cost.
func (h *Hypothesis) String() string {
	var b strings.Builder
	for _, w := range h.Words {
		fmt.Fprintf(&b, "%s %.2f\n", w.Word, w.Weight)
	}
	fmt.Fprintf(&b, "total %.2f", h.Total)
	return b.String()
}
