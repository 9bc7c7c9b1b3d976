package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrNoNodes is returned by [Build] when the definition declares
	// zero nodes. A lattice needs at least a start node.
	ErrNoNodes = errors.New("lattice must have at least one node")

	// ErrNodeIndex is returned by [Build] when a start/end index, a
	// timestamp entry, or an edge endpoint falls outside [0, numNodes).
	ErrNodeIndex = errors.New("node index out of range")

	// ErrDuplicateEdge is returned by [Build] when two edges share the
	// same (from, to) pair. At most one edge may exist per ordered pair.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrNegativeTime is returned by [Build] when a node timestamp is
	// negative. Timestamps are seconds from the start of the utterance.
	ErrNegativeTime = errors.New("negative node timestamp")

	// ErrCycle is returned by [Lattice.TopologicalSort] (and every
	// algorithm built on it) when the edge relation contains a cycle,
	// or an edge points into a node never reached from the start node.
	// Residual in-degree after the queue drains is the detector.
	ErrCycle = errors.New("lattice contains a cycle")

	// ErrNoPath is returned by [Lattice.Decode] when the end node was
	// never relaxed, i.e. no start→end path exists. Callers are
	// expected to hand in connected lattices; this guards the
	// backtrack from walking off the predecessor array.
	ErrNoPath = errors.New("no path from start to end")
)

// SilenceToken is the reserved edge label denoting non-lexical silence.
// Edges carrying it are excluded from the density word count.
const SilenceToken = "-silence-"

// Edge is a directed, weighted connection between two lattice nodes.
// The label is one word token; multiwords (e.g. "to_the") are a single
// atomic token. Scores are signed log-domain integers produced by the
// recognizer.
type Edge struct {
	Label   string // word token, or SilenceToken
	AMScore int    // acoustic model score
	LMScore int    // language model score
}

// CombinedWeight returns the edge weight used by the decoder:
// amScore + lmScale*lmScore.
func (e Edge) CombinedWeight(lmScale float64) float64 {
	return float64(e.AMScore) + lmScale*float64(e.LMScore)
}

// EdgeDef describes one edge in a lattice definition.
type EdgeDef struct {
	From, To int
	Label    string
	AMScore  int
	LMScore  int
}

// Def describes a lattice to construct with [Build]. Times must hold
// one timestamp per node, indexed by node number.
type Def struct {
	ID    string
	Start int
	End   int
	Times []float64
	Edges []EdgeDef
}

// Lattice is a weighted directed acyclic graph compactly representing
// a large space of speech-recognition hypotheses for one utterance.
// Nodes are integer indices with timestamps; edges carry a word label
// and two scores.
//
// A Lattice is immutable: all fields are populated by [Build] and only
// read afterwards, so concurrent use from multiple goroutines is safe
// without locking.
//
// The edge set is stored as a dense adjacency matrix (adj[i][j] == nil
// means no edge i→j), giving O(1) lookup by ordered pair and ordered
// neighbor iteration. Memory is O(V²), fine for the
// hundreds-to-low-thousands of nodes typical of this domain.
type Lattice struct {
	id       string
	start    int
	end      int
	numEdges int
	adj      [][]*Edge
	times    []float64
	inDeg    []int
}

// Build constructs a Lattice from def, validating it in full.
//
// Returns an error wrapping [ErrNoNodes], [ErrNodeIndex],
// [ErrNegativeTime], or [ErrDuplicateEdge] when the definition is
// inconsistent. Acyclicity is not checked here; it is detected by
// [Lattice.TopologicalSort] when an algorithm first needs the order.
func Build(def Def) (*Lattice, error) {
	n := len(def.Times)
	if n == 0 {
		return nil, ErrNoNodes
	}
	if def.Start < 0 || def.Start >= n {
		return nil, fmt.Errorf("start %d: %w", def.Start, ErrNodeIndex)
	}
	if def.End < 0 || def.End >= n {
		return nil, fmt.Errorf("end %d: %w", def.End, ErrNodeIndex)
	}
	for i, ts := range def.Times {
		if ts < 0 {
			return nil, fmt.Errorf("node %d time %v: %w", i, ts, ErrNegativeTime)
		}
	}

	l := &Lattice{
		id:       def.ID,
		start:    def.Start,
		end:      def.End,
		numEdges: len(def.Edges),
		adj:      make([][]*Edge, n),
		times:    append([]float64(nil), def.Times...),
		inDeg:    make([]int, n),
	}
	for i := range l.adj {
		l.adj[i] = make([]*Edge, n)
	}

	for _, e := range def.Edges {
		if e.From < 0 || e.From >= n {
			return nil, fmt.Errorf("edge source %d: %w", e.From, ErrNodeIndex)
		}
		if e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("edge dest %d: %w", e.To, ErrNodeIndex)
		}
		if l.adj[e.From][e.To] != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, ErrDuplicateEdge)
		}
		l.adj[e.From][e.To] = &Edge{Label: e.Label, AMScore: e.AMScore, LMScore: e.LMScore}
		l.inDeg[e.To]++
	}

	return l, nil
}

// ID returns the utterance identifier.
func (l *Lattice) ID() string { return l.id }

// NumNodes returns the number of nodes.
func (l *Lattice) NumNodes() int { return len(l.times) }

// NumEdges returns the number of edges.
func (l *Lattice) NumEdges() int { return l.numEdges }

// Start returns the index of the start node.
func (l *Lattice) Start() int { return l.start }

// End returns the index of the end node.
func (l *Lattice) End() int { return l.end }

// Time returns the timestamp of node i in seconds.
func (l *Lattice) Time(i int) float64 { return l.times[i] }

// EdgeBetween returns the edge from i to j, and whether one exists.
func (l *Lattice) EdgeBetween(i, j int) (Edge, bool) {
	if e := l.adj[i][j]; e != nil {
		return *e, true
	}
	return Edge{}, false
}

// InDegree returns the number of incoming edges of node i.
func (l *Lattice) InDegree(i int) int { return l.inDeg[i] }

// Neighbor is one outgoing edge of a node, as yielded by
// [Lattice.Outgoing].
type Neighbor struct {
	To   int
	Edge Edge
}

// Outgoing returns the outgoing edges of node i in increasing
// destination-index order. The returned slice is freshly allocated.
func (l *Lattice) Outgoing(i int) []Neighbor {
	var out []Neighbor
	for j, e := range l.adj[i] {
		if e != nil {
			out = append(out, Neighbor{To: j, Edge: *e})
		}
	}
	return out
}

// Duration returns the elapsed time between the start and end nodes.
func (l *Lattice) Duration() float64 {
	return l.times[l.end] - l.times[l.start]
}
