// Package latfile reads and writes the textual lattice file format.
//
// A lattice file has five header lines, one node line per node, and
// one edge line per edge:
//
//	id utt-443
//	start 0
//	end 3
//	numNodes 4
//	numEdges 4
//	node 0 0.00
//	node 1 0.28
//	...
//	edge 0 1 hello -64 -12
//	edge 1 3 world -55 -9
//
// Scores are signed integers; timestamps are seconds. [Read] builds an
// immutable [lattice.Lattice] from this format and [Write]
// reconstructs the format from the model (nodes ascending by index,
// edges by ascending (source, dest) pair), so a lattice round-trips
// losslessly through write-then-read.
//
// Failures carry distinct error codes: opening the file reports
// FILE_NOT_FOUND, malformed or truncated content reports PARSE_ERROR.
// Both are distinguishable from the GRAPH_CYCLE error the sorter
// reports later. Use errors.Is / errors.GetCode to branch.
package latfile
