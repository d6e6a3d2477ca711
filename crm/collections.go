// ABOUTME: Named collection access over the document Store
// ABOUTME: Typed load/save helpers, one read and one write per collection per operation
package crm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

// The four named collections. Each is a single JSON document in the Store.
const (
	CollectionContacts     = "contacts"
	CollectionInteractions = "interactions"
	CollectionSummaries    = "summaries"
	CollectionConfig       = "config"
)

func loadSlice[T any](ctx context.Context, st store.Store, name string) ([]T, error) {
	data, err := st.ReadCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", name, err)
	}
	return out, nil
}

func saveSlice[T any](ctx context.Context, st store.Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	return st.WriteCollection(ctx, name, data)
}

func loadContacts(ctx context.Context, st store.Store) ([]models.Contact, error) {
	return loadSlice[models.Contact](ctx, st, CollectionContacts)
}

func saveContacts(ctx context.Context, st store.Store, contacts []models.Contact) error {
	return saveSlice(ctx, st, CollectionContacts, contacts)
}

func loadInteractions(ctx context.Context, st store.Store) ([]models.Interaction, error) {
	return loadSlice[models.Interaction](ctx, st, CollectionInteractions)
}

func saveInteractions(ctx context.Context, st store.Store, interactions []models.Interaction) error {
	return saveSlice(ctx, st, CollectionInteractions, interactions)
}

func loadSummaries(ctx context.Context, st store.Store) ([]models.ContactSummary, error) {
	return loadSlice[models.ContactSummary](ctx, st, CollectionSummaries)
}

func saveSummaries(ctx context.Context, st store.Store, summaries []models.ContactSummary) error {
	return saveSlice(ctx, st, CollectionSummaries, summaries)
}

func loadConfig(ctx context.Context, st store.Store) (models.CrmConfig, error) {
	data, err := st.ReadCollection(ctx, CollectionConfig)
	if err != nil {
		return models.CrmConfig{}, err
	}
	if len(data) == 0 {
		return models.CrmConfig{}, nil
	}
	var cfg models.CrmConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.CrmConfig{}, fmt.Errorf("failed to decode collection %s: %w", CollectionConfig, err)
	}
	return cfg, nil
}

func saveConfig(ctx context.Context, st store.Store, cfg models.CrmConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", CollectionConfig, err)
	}
	return st.WriteCollection(ctx, CollectionConfig, data)
}
