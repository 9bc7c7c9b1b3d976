package lattice

import (
	"math"
	"math/big"
)

// forwardPass is the traversal skeleton shared by the decoder and the
// path counter: a dynamic program evaluated in topological order with
// a pluggable combine step.
//
// init is called once with the start node before traversal. fold is
// called once per present edge (i, n), where n runs through the
// topological order and i through predecessors in increasing index
// order. The caller owns the DP arrays; forwardPass only fixes the
// evaluation order.
func (l *Lattice) forwardPass(init func(start int), fold func(i, n int, e Edge)) error {
	order, err := l.TopologicalSort()
	if err != nil {
		return err
	}

	init(l.start)
	for _, n := range order {
		for i := 0; i < l.NumNodes(); i++ {
			if e := l.adj[i][n]; e != nil {
				fold(i, n, *e)
			}
		}
	}
	return nil
}

// Decode finds the hypothesis with minimum combined weight from the
// start node to the end node. lmScale weights the language-model score
// when combining: weight = amScore + lmScale*lmScore.
//
// Relaxation uses <=, so when several predecessors reach a node at
// exactly the same cost, the one with the highest index wins (it is
// scanned last). This tie-break is part of the contract; do not
// tighten the comparison to <.
//
// Returns ErrCycle for a malformed lattice. Callers must hand in a
// lattice whose end node is reachable from start; if it is not,
// ErrNoPath is returned.
//
// Complexity: O(V²) from the dense predecessor scan per node.
func (l *Lattice) Decode(lmScale float64) (*Hypothesis, error) {
	n := l.NumNodes()
	cost := make([]float64, n)
	pred := make([]int, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		pred[i] = -1
	}

	err := l.forwardPass(
		func(start int) { cost[start] = 0 },
		func(i, node int, e Edge) {
			if w := e.CombinedWeight(lmScale); w+cost[i] <= cost[node] {
				cost[node] = w + cost[i]
				pred[node] = i
			}
		},
	)
	if err != nil {
		return nil, err
	}

	path, err := l.backtrack(pred)
	if err != nil {
		return nil, err
	}

	hyp := &Hypothesis{Total: cost[l.end]}
	for k := 0; k+1 < len(path); k++ {
		if e := l.adj[path[k]][path[k+1]]; e != nil {
			hyp.append(e.Label, e.CombinedWeight(lmScale))
		}
	}
	return hyp, nil
}

// backtrack walks predecessor links from the end node to the start
// node and returns the forward node sequence, start first.
func (l *Lattice) backtrack(pred []int) ([]int, error) {
	path := []int{l.end}
	for node := l.end; node != l.start; {
		node = pred[node]
		if node < 0 {
			return nil, ErrNoPath
		}
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// CountPaths returns the exact number of distinct start→end paths.
//
// The count grows exponentially with lattice width, so it is carried
// in big.Int throughout; no intermediate value ever touches a
// fixed-width integer. The traversal is the same topological-order DP
// as Decode with the combine operator changed from minimize to sum.
//
// Returns ErrCycle for a malformed lattice.
func (l *Lattice) CountPaths() (*big.Int, error) {
	counts := make([]*big.Int, l.NumNodes())
	for i := range counts {
		counts[i] = new(big.Int)
	}

	err := l.forwardPass(
		func(start int) { counts[start].SetInt64(1) },
		func(i, node int, _ Edge) {
			counts[node].Add(counts[node], counts[i])
		},
	)
	if err != nil {
		return nil, err
	}
	return counts[l.end], nil
}
