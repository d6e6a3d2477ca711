// ABOUTME: Store collaborator interface for whole-collection document persistence
// ABOUTME: Each named collection is one JSON document, read and replaced in full
package store

import "context"

// Store persists named collections as whole documents. A read returns a
// consistent full snapshot; a write replaces the previous full contents.
// There is no partial update, locking, or compare-and-swap underneath, so
// callers own the discipline of batching read-modify-write cycles.
type Store interface {
	// ReadCollection returns the current document for the named collection,
	// or nil with no error if the collection has never been written.
	ReadCollection(ctx context.Context, name string) ([]byte, error)

	// WriteCollection atomically replaces the named collection's document
	// from the caller's perspective.
	WriteCollection(ctx context.Context, name string, data []byte) error
}
