// Package lattice models a speech-recognition word lattice: a weighted
// directed acyclic graph that compactly represents an exponentially
// large space of candidate word sequences for one utterance.
//
// # Overview
//
// Nodes are integer indices carrying a timestamp in seconds; directed
// edges carry a word label, an acoustic-model score, and a
// language-model score. The two scores are combined per edge as
// amScore + lmScale*lmScore for a caller-supplied lmScale.
//
// The package provides the graph algorithm layer on this structure:
//
//   - [Lattice.TopologicalSort]: deterministic queue-based ordering
//     seeded at the start node, with cycle detection
//   - [Lattice.Decode]: topological-order shortest-path (Viterbi-style)
//     extraction of the best hypothesis
//   - [Lattice.CountPaths]: exact path counting in big.Int
//   - [Lattice.WordsAtTime], [Lattice.Occurrences], [Lattice.Density]:
//     time-indexed queries and a density metric
//
// The decoder and counter share one traversal skeleton, a dynamic
// program evaluated in topological order, and differ only in the
// initial value and the combine step.
//
// # Basic Usage
//
// Construct a lattice from a [Def] with [Build], then query it:
//
//	lat, err := lattice.Build(lattice.Def{
//	    ID:    "utt1",
//	    Start: 0,
//	    End:   1,
//	    Times: []float64{0, 1},
//	    Edges: []lattice.EdgeDef{{From: 0, To: 1, Label: "hello", AMScore: 1, LMScore: 2}},
//	})
//	if err != nil {
//	    return err
//	}
//	hyp, err := lat.Decode(0.5)
//
// Reading lattices from the textual file format is handled by the
// latfile package.
//
// # Concurrency
//
// A Lattice is immutable after [Build]: no method mutates nodes,
// edges, or timestamps, and every algorithm allocates its own working
// arrays. Any number of goroutines may run any of the algorithms on
// the same Lattice concurrently without locking.
//
// [latfile]: github.com/latt-dev/latt/pkg/latfile
package lattice
