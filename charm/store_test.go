// ABOUTME: Tests for the Charm KV document store
// ABOUTME: Validates whole-document semantics over the KV backend
package charm

import (
	"context"
	"testing"
)

func TestDocumentStoreMissingCollection(t *testing.T) {
	client, cleanup := NewTestClient(t)
	defer cleanup()

	ds := NewDocumentStore(client)

	data, err := ds.ReadCollection(context.Background(), "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil for missing collection, got %q", data)
	}
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	client, cleanup := NewTestClient(t)
	defer cleanup()

	ds := NewDocumentStore(client)
	ctx := context.Background()

	doc := []byte(`[{"id":"a"}]`)
	if err := ds.WriteCollection(ctx, "contacts", doc); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}

	got, err := ds.ReadCollection(ctx, "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("Expected %q, got %q", doc, got)
	}

	// Write replaces the whole document
	if err := ds.WriteCollection(ctx, "contacts", []byte(`[]`)); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}
	got, err = ds.ReadCollection(ctx, "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Expected full replacement, got %q", got)
	}
}

func TestDocumentStoreCollectionsAreIndependent(t *testing.T) {
	client, cleanup := NewTestClient(t)
	defer cleanup()

	ds := NewDocumentStore(client)
	ctx := context.Background()

	if err := ds.WriteCollection(ctx, "contacts", []byte(`[1]`)); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}
	if err := ds.WriteCollection(ctx, "interactions", []byte(`[2]`)); err != nil {
		t.Fatalf("WriteCollection failed: %v", err)
	}

	contacts, err := ds.ReadCollection(ctx, "contacts")
	if err != nil {
		t.Fatalf("ReadCollection failed: %v", err)
	}
	if string(contacts) != `[1]` {
		t.Errorf("Contacts collection clobbered: %q", contacts)
	}
}
