// ABOUTME: Privacy key management over the config collection
// ABOUTME: Set or inspect the single shared passphrase guarding private records
package crm

import (
	"context"
	"fmt"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

// PrivacyStatus reports whether a privacy key is configured. The key itself
// is never returned.
type PrivacyStatus struct {
	Configured bool
}

// GetPrivacyStatus reads the config collection.
func GetPrivacyStatus(ctx context.Context, st store.Store) (*PrivacyStatus, error) {
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	return &PrivacyStatus{Configured: cfg.PrivacyKey != ""}, nil
}

// SetPrivacyKey replaces the privacy key. Changing an already-configured key
// requires the current one; setting the first key does not.
func SetPrivacyKey(ctx context.Context, st store.Store, currentKey, newKey string) error {
	if newKey == "" {
		return fmt.Errorf("%w: new key cannot be empty", ErrValidation)
	}

	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return err
	}
	if cfg.PrivacyKey != "" && currentKey != cfg.PrivacyKey {
		return ErrKeyMismatch
	}

	return saveConfig(ctx, st, models.CrmConfig{PrivacyKey: newKey})
}
