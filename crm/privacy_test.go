// ABOUTME: Tests for the privacy filter
// ABOUTME: Covers unlock rules, interaction privacy, and participant redaction
package crm

import (
	"testing"

	"github.com/harperreed/rolo/models"
)

func TestUnlocked(t *testing.T) {
	cases := []struct {
		name     string
		provided string
		config   string
		want     bool
	}{
		{"correct key", "sesame", "sesame", true},
		{"wrong key", "nope", "sesame", false},
		{"empty provided", "", "sesame", false},
		{"unconfigured", "sesame", "", false},
		{"both empty never unlocks", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Unlocked(tc.provided, models.CrmConfig{PrivacyKey: tc.config})
			if got != tc.want {
				t.Errorf("Unlocked(%q, %q) = %v, want %v", tc.provided, tc.config, got, tc.want)
			}
		})
	}
}

func TestIsInteractionPrivate(t *testing.T) {
	contacts := []models.Contact{
		{ID: "pub", Name: "Pat Public"},
		{ID: "priv", Name: "Sam Secret", Private: true},
	}
	idx := contactIndex(contacts)

	plain := models.Interaction{ContactIDs: []string{"pub"}}
	if IsInteractionPrivate(&plain, idx) {
		t.Error("Interaction with only public participants should not be private")
	}

	flagged := models.Interaction{ContactIDs: []string{"pub"}, Private: true}
	if !IsInteractionPrivate(&flagged, idx) {
		t.Error("Private-flagged interaction should be private")
	}

	mixed := models.Interaction{ContactIDs: []string{"pub", "priv"}}
	if !IsInteractionPrivate(&mixed, idx) {
		t.Error("Interaction with a private participant should be private")
	}
}

func TestRedactParticipants(t *testing.T) {
	contacts := []models.Contact{
		{ID: "pub", Name: "Pat Public"},
		{ID: "priv", Name: "Sam Secret", Private: true},
	}
	idx := contactIndex(contacts)

	in := models.Interaction{ID: "i1", ContactIDs: []string{"pub", "priv"}}

	locked := redactParticipants(in, idx, false)
	if len(locked.ContactIDs) != 1 || locked.ContactIDs[0] != "pub" {
		t.Errorf("Expected private participant stripped, got %v", locked.ContactIDs)
	}

	unlocked := redactParticipants(in, idx, true)
	if len(unlocked.ContactIDs) != 2 {
		t.Errorf("Expected no redaction when unlocked, got %v", unlocked.ContactIDs)
	}

	// Redaction must not mutate the original
	if len(in.ContactIDs) != 2 {
		t.Errorf("Original interaction mutated: %v", in.ContactIDs)
	}
}
