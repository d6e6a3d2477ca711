// ABOUTME: Filesystem-backed Store implementation
// ABOUTME: One JSON file per collection with atomic rename on write
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each collection as <dir>/<name>.json. Writes go through a
// temp file and rename so a reader never observes a half-written document.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) ReadCollection(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) WriteCollection(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", name, err)
	}
	return nil
}
