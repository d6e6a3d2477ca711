// ABOUTME: store.Store implementation backed by Charm KV
// ABOUTME: Each collection document lives under one key, read and replaced whole

package charm

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

const collectionKeyPrefix = "collection/"

// DocumentStore adapts a Client to the whole-collection document contract.
// One KV key per collection holds the entire serialized document, so a write
// always replaces the previous full contents.
type DocumentStore struct {
	client *Client
}

func NewDocumentStore(client *Client) *DocumentStore {
	return &DocumentStore{client: client}
}

func (s *DocumentStore) ReadCollection(_ context.Context, name string) ([]byte, error) {
	data, err := s.client.Get([]byte(collectionKeyPrefix + name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return data, nil
}

func (s *DocumentStore) WriteCollection(_ context.Context, name string, data []byte) error {
	if err := s.client.Set([]byte(collectionKeyPrefix+name), data); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}
