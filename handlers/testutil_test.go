// ABOUTME: Shared helpers for handler tests
// ABOUTME: Provides an in-memory store and seeded contacts
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/rolo/store"
)

func setupTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	return store.NewMemoryStore()
}

func mustAddContact(t *testing.T, h *ContactHandlers, name string) ContactOutput {
	t.Helper()
	_, out, err := h.AddContact(context.Background(), nil, AddContactInput{
		Name:           name,
		ForceDuplicate: true,
	})
	if err != nil {
		t.Fatalf("AddContact(%q) failed: %v", name, err)
	}
	if out.Contact == nil {
		t.Fatalf("AddContact(%q) returned no contact", name)
	}
	return *out.Contact
}
