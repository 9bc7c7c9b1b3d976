package lattice

// TopologicalSort returns the nodes reachable from the start node in a
// deterministic topological order: for every edge (i, j) among the
// returned nodes, i appears strictly before j.
//
// The order is produced by Kahn's algorithm seeded at the start node.
// A FIFO queue plus ascending destination-index scanning makes the
// order fully deterministic; downstream tie-break behavior (see
// [Lattice.Decode]) depends on exactly this ordering, so neither may
// change independently.
//
// After the queue drains, any node retaining a nonzero working
// in-degree was part of a cycle or fed by one, or sits behind an edge
// from a node never reached from start; either way the input is
// malformed and [ErrCycle] is returned.
//
// Complexity: O(V²) with the dense matrix scan, O(V) extra space.
func (l *Lattice) TopologicalSort() ([]int, error) {
	// An edge into the start node is either a cycle through it or a
	// stray edge from a node unreachable from start. Both are
	// malformed, and a seeded start with nonzero in-degree would be
	// processed twice, corrupting the residual check below.
	if l.inDeg[l.start] != 0 {
		return nil, ErrCycle
	}

	n := l.NumNodes()
	deg := append([]int(nil), l.inDeg...)

	order := make([]int, 0, n)
	queue := []int{l.start}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for j := 0; j < n; j++ {
			if l.adj[curr][j] == nil {
				continue
			}
			deg[j]--
			if deg[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	residual := 0
	for _, d := range deg {
		residual += d
	}
	if residual > 0 {
		return nil, ErrCycle
	}

	return order, nil
}
