package latfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/latt-dev/latt/pkg/lattice"
)

// Write reconstructs the lattice text format from lat and writes it to
// w. The output is never a stored copy of the input: headers come
// first, then nodes ascending by index with timestamps to two
// decimals, then edges sorted by ascending (source, dest).
func Write(w io.Writer, lat *lattice.Lattice) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "id %s\n", lat.ID())
	fmt.Fprintf(bw, "start %d\n", lat.Start())
	fmt.Fprintf(bw, "end %d\n", lat.End())
	fmt.Fprintf(bw, "numNodes %d\n", lat.NumNodes())
	fmt.Fprintf(bw, "numEdges %d\n", lat.NumEdges())

	for i := 0; i < lat.NumNodes(); i++ {
		fmt.Fprintf(bw, "node %d %.2f\n", i, lat.Time(i))
	}

	// The dense scan yields (source, dest) in ascending order already.
	for i := 0; i < lat.NumNodes(); i++ {
		for _, n := range lat.Outgoing(i) {
			fmt.Fprintf(bw, "edge %d %d %s %d %d\n", i, n.To, n.Edge.Label, n.Edge.AMScore, n.Edge.LMScore)
		}
	}

	return bw.Flush()
}

// Save writes lat to the file at path, creating or truncating it.
func Save(path string, lat *lattice.Lattice) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, lat); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
