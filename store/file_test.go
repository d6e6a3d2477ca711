// ABOUTME: Tests for the filesystem Store implementation
// ABOUTME: Covers missing collections, round-trips, and full replacement
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingCollection(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	data, err := s.ReadCollection(context.Background(), "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil for missing collection, got %q", data)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	doc := []byte(`[{"id":"a"}]`)
	if err := s.WriteCollection(ctx, "contacts", doc); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}

	got, err := s.ReadCollection(ctx, "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("Expected %q, got %q", doc, got)
	}

	// File lives at <dir>/contacts.json
	if _, err := os.Stat(filepath.Join(dir, "contacts.json")); err != nil {
		t.Errorf("Collection file missing: %v", err)
	}
}

func TestFileStoreWriteReplaces(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	if err := s.WriteCollection(ctx, "contacts", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}
	if err := s.WriteCollection(ctx, "contacts", []byte(`[]`)); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}

	got, err := s.ReadCollection(ctx, "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Expected full replacement, got %q", got)
	}
}
