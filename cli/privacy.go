// ABOUTME: Privacy key CLI commands
// ABOUTME: Inspect and rotate the key guarding private records
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/store"
)

// PrivacyStatusCommand reports whether a privacy key is configured.
func PrivacyStatusCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("privacy status", flag.ExitOnError)
	_ = fs.Parse(args)

	status, err := crm.GetPrivacyStatus(context.Background(), st)
	if err != nil {
		return fmt.Errorf("failed to read privacy status: %w", err)
	}

	if status.Configured {
		fmt.Println("Privacy key: configured")
		fmt.Println(faintStyle.Render("Private records require the key."))
	} else {
		fmt.Println("Privacy key: not configured")
		fmt.Println(faintStyle.Render("Private records are visible to everyone."))
	}
	return nil
}

// SetPrivacyKeyCommand sets or rotates the privacy key.
func SetPrivacyKeyCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("privacy set-key", flag.ExitOnError)
	current := fs.String("current", "", "Current privacy key (required when a key is already configured)")
	newKey := fs.String("new", "", "New privacy key (required)")
	_ = fs.Parse(args)

	if *newKey == "" {
		return fmt.Errorf("--new is required")
	}

	if err := crm.SetPrivacyKey(context.Background(), st, *current, *newKey); err != nil {
		return fmt.Errorf("failed to set privacy key: %w", err)
	}

	fmt.Println(checkmark("Privacy key updated"))
	return nil
}
