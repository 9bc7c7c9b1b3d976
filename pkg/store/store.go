// Package store provides persistent archival of lattices keyed by
// utterance ID.
//
// Two backends are available: [MongoStore] for shared deployments and
// [MemoryStore] for tests and single-process use. Records hold the
// serialized lattice text, so anything retrieved can be fed straight
// back through the latfile reader.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no record exists for the
// utterance ID.
var ErrNotFound = errors.New("utterance not found")

// Record is one archived lattice.
type Record struct {
	UtteranceID string    `bson:"_id" json:"utterance_id"`
	Text        string    `bson:"text" json:"text"`
	NumNodes    int       `bson:"num_nodes" json:"num_nodes"`
	NumEdges    int       `bson:"num_edges" json:"num_edges"`
	StoredAt    time.Time `bson:"stored_at" json:"stored_at"`
}

// Store is the interface archive backends implement.
type Store interface {
	// Put inserts or replaces the record for its utterance ID.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by utterance ID.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, utteranceID string) (*Record, error)

	// List returns all archived utterance IDs, sorted ascending.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
