// ABOUTME: Shared fixtures for repository tests
// ABOUTME: Seeds contacts and interactions against an in-memory store
package crm

import (
	"context"
	"testing"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

func mustAddContact(t *testing.T, st *store.MemoryStore, nc NewContact) *models.Contact {
	t.Helper()
	res, err := AddContact(context.Background(), st, nc, true, "")
	if err != nil {
		t.Fatalf("AddContact(%s) failed: %v", nc.Name, err)
	}
	if res.Contact == nil {
		t.Fatalf("AddContact(%s) returned no contact", nc.Name)
	}
	return res.Contact
}

func mustLogInteraction(t *testing.T, st *store.MemoryStore, ni NewInteraction, key string) *models.Interaction {
	t.Helper()
	res, err := LogInteraction(context.Background(), st, ni, true, key)
	if err != nil {
		t.Fatalf("LogInteraction failed: %v", err)
	}
	if res.Interaction == nil {
		t.Fatalf("LogInteraction returned no interaction")
	}
	return res.Interaction
}

func summaryByID(t *testing.T, st *store.MemoryStore, id string) *models.ContactSummary {
	t.Helper()
	summaries, err := loadSummaries(context.Background(), st)
	if err != nil {
		t.Fatalf("loadSummaries failed: %v", err)
	}
	for i := range summaries {
		if summaries[i].ID == id {
			return &summaries[i]
		}
	}
	return nil
}

func collectionBytes(t *testing.T, st *store.MemoryStore, name string) string {
	t.Helper()
	data, err := st.ReadCollection(context.Background(), name)
	if err != nil {
		t.Fatalf("ReadCollection(%s) failed: %v", name, err)
	}
	return string(data)
}
