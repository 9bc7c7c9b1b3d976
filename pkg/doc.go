// Package pkg provides the core libraries for latt word-lattice analysis.
//
// # Overview
//
// A word lattice is a compact directed acyclic graph of alternative
// transcriptions produced by a speech recognizer: nodes are points in
// time, edges are word candidates with acoustic and language-model
// scores. The pkg directory is organized into four main areas:
//
//  1. [lattice] - Domain logic (graph model, topological sort, decoding,
//     path counting, time-indexed queries)
//  2. [latfile] - The lattice text serialization (read/write)
//  3. [pipeline] - Orchestration (load → analyze → render)
//  4. [cache], [store] - Infrastructure (result caching, archive)
//
// # Architecture
//
// The typical data flow through latt:
//
//	lattice text file
//	         ↓
//	    [latfile] package (parse + validate)
//	         ↓
//	    [lattice] package (topological sort, decode, count, query)
//	         ↓
//	    [render] package (DOT / SVG)
//	         ↓
//	    text/JSON/DOT/SVG output
//
// # Quick Start
//
// Load a lattice and decode the best hypothesis:
//
//	import (
//	    "github.com/latt-dev/latt/pkg/latfile"
//	)
//
//	// 1. Load and validate
//	lat, err := latfile.Load("utt-443.lat")
//	if err != nil {
//	    return err
//	}
//
//	// 2. Decode the lowest-weight path
//	best, err := lat.Decode(1.0)
//
//	// 3. Count distinct paths exactly
//	n, err := lat.CountPaths()
//
// # Main Packages
//
// ## Core Domain Logic
//
// [lattice] - Immutable weighted DAG over time-stamped nodes. Provides
// deterministic topological ordering with cycle detection, Viterbi-style
// best-path decoding, exact big-integer path counting, and time-indexed
// queries (words active at a time point, word occurrences, density).
//
// [latfile] - The line-oriented lattice text format. Reading validates
// structure and reports tagged errors; writing emits the canonical
// ordering so equivalent lattices serialize identically.
//
// [render] - DOT emission and SVG rendering via Graphviz.
//
// ## Infrastructure
//
// [pipeline] - Complete analysis pipeline (load → analyze → render)
// used by CLI and API. Ensures consistent behavior across all entry
// points, with analysis results cached by content hash.
//
// [cache] - Pluggable result cache: FileCache for the CLI, RedisCache
// for the API server, NullCache for tests.
//
// [store] - Lattice archive backed by MongoDB, with an in-memory
// implementation for tests.
//
// [config] - TOML configuration shared by CLI and server.
//
// [errors] - Coded errors distinguishing missing files, malformed
// input, and cyclic graphs; the CLI maps the codes to exit statuses.
//
// [observability] - Hook registry for instrumenting analysis and cache
// events without coupling the libraries to a metrics backend.
package pkg
