package latfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/latt-dev/latt/pkg/errors"
	"github.com/latt-dev/latt/pkg/lattice"
)

// header holds the five declared header values. numNodes and numEdges
// are declared counts and must match the actual node and edge lines.
type header struct {
	id       string
	start    int
	end      int
	numNodes int
	numEdges int
}

// Read parses the lattice text format from r and builds the lattice.
//
// All five header lines must appear (in any order) before the first
// node line. The declared numNodes and numEdges must match the node
// and edge lines actually present; a mismatch is a PARSE_ERROR, as is
// any malformed or truncated line.
func Read(r io.Reader) (*lattice.Lattice, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		hdr       header
		seen      int
		times     []float64
		nodesRead int
		edges     []lattice.EdgeDef
		lineNo    int
	)

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "id", "start", "end", "numNodes", "numEdges":
			if err := parseHeaderLine(&hdr, fields, lineNo); err != nil {
				return nil, err
			}
			seen++
			if fields[0] == "numNodes" {
				times = make([]float64, hdr.numNodes)
			}

		case "node":
			if seen < 5 {
				return nil, errors.New(errors.ErrCodeParse, "line %d: node line before complete header", lineNo)
			}
			if len(fields) != 3 {
				return nil, errors.New(errors.ErrCodeParse, "line %d: node line needs 3 fields, got %d", lineNo, len(fields))
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil || idx < 0 || idx >= hdr.numNodes {
				return nil, errors.New(errors.ErrCodeParse, "line %d: bad node index %q", lineNo, fields[1])
			}
			ts, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeParse, "line %d: bad node timestamp %q", lineNo, fields[2])
			}
			times[idx] = ts
			nodesRead++

		case "edge":
			if len(fields) != 6 {
				return nil, errors.New(errors.ErrCodeParse, "line %d: edge line needs 6 fields, got %d", lineNo, len(fields))
			}
			src, err1 := strconv.Atoi(fields[1])
			dst, err2 := strconv.Atoi(fields[2])
			am, err3 := strconv.Atoi(fields[4])
			lm, err4 := strconv.Atoi(fields[5])
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				return nil, errors.New(errors.ErrCodeParse, "line %d: bad edge line %q", lineNo, sc.Text())
			}
			edges = append(edges, lattice.EdgeDef{
				From:    src,
				To:      dst,
				Label:   fields[3],
				AMScore: am,
				LMScore: lm,
			})

		default:
			return nil, errors.New(errors.ErrCodeParse, "line %d: unknown record %q", lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read lattice")
	}

	if seen < 5 {
		return nil, errors.New(errors.ErrCodeParse, "truncated header: %d of 5 lines", seen)
	}
	if nodesRead != hdr.numNodes {
		return nil, errors.New(errors.ErrCodeParse, "declared numNodes %d, found %d node lines", hdr.numNodes, nodesRead)
	}
	if len(edges) != hdr.numEdges {
		return nil, errors.New(errors.ErrCodeParse, "declared numEdges %d, found %d edge lines", hdr.numEdges, len(edges))
	}

	lat, err := lattice.Build(lattice.Def{
		ID:    hdr.id,
		Start: hdr.start,
		End:   hdr.end,
		Times: times,
		Edges: edges,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "inconsistent lattice")
	}
	return lat, nil
}

func parseHeaderLine(hdr *header, fields []string, lineNo int) error {
	if len(fields) != 2 {
		return errors.New(errors.ErrCodeParse, "line %d: header line needs 2 fields, got %d", lineNo, len(fields))
	}

	if fields[0] == "id" {
		hdr.id = fields[1]
		return nil
	}

	v, err := strconv.Atoi(fields[1])
	if err != nil || v < 0 {
		return errors.New(errors.ErrCodeParse, "line %d: %s wants a non-negative integer, got %q", lineNo, fields[0], fields[1])
	}
	switch fields[0] {
	case "start":
		hdr.start = v
	case "end":
		hdr.end = v
	case "numNodes":
		hdr.numNodes = v
	case "numEdges":
		hdr.numEdges = v
	}
	return nil
}

// Load opens path and reads the lattice from it.
//
// An unopenable file reports FILE_NOT_FOUND; everything else is
// delegated to [Read].
func Load(path string) (*lattice.Lattice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	lat, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "parse %s", path)
	}
	return lat, nil
}
