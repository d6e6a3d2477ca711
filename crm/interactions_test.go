// ABOUTME: Tests for interaction repository operations
// ABOUTME: Covers logging, duplicate warnings, batched rebuilds, edit unions, and listings
package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

func TestLogInteractionGroupRebuildsEveryParticipant(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	a := mustAddContact(t, st, NewContact{Name: "Ann Able"})
	b := mustAddContact(t, st, NewContact{Name: "Ben Brown"})
	c := mustAddContact(t, st, NewContact{Name: "Cal Cooper"})

	st.ResetCounts()
	res, err := LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{a.ID, b.ID, c.ID},
		Date:       "2026-02-25",
		Type:       "meeting",
		Summary:    "Group dinner downtown",
	}, false, "")
	if err != nil {
		t.Fatalf("LogInteraction failed: %v", err)
	}
	if res.Interaction == nil {
		t.Fatal("Expected interaction created")
	}

	// The three-participant event must be one read and one write of the
	// summaries collection, not three cycles.
	if got := st.Reads(CollectionSummaries); got != 1 {
		t.Errorf("Expected exactly 1 summaries read, got %d", got)
	}
	if got := st.Writes(CollectionSummaries); got != 1 {
		t.Errorf("Expected exactly 1 summaries write, got %d", got)
	}
	if got := st.Writes(CollectionInteractions); got != 1 {
		t.Errorf("Expected exactly 1 interactions write, got %d", got)
	}

	for _, id := range []string{a.ID, b.ID, c.ID} {
		s := summaryByID(t, st, id)
		if s == nil {
			t.Fatalf("Missing summary for %s", id)
		}
		if s.InteractionCount != 1 {
			t.Errorf("Summary for %s should count the interaction, got %d", id, s.InteractionCount)
		}
		if s.LastInteraction != "2026-02-25" {
			t.Errorf("Summary for %s has wrong last interaction %s", id, s.LastInteraction)
		}
	}
}

func TestLogInteractionResolvesNames(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})

	res, err := LogInteraction(ctx, st, NewInteraction{
		ContactNames: []string{"alice"},
		Date:         "2026-02-25",
		Summary:      "Quick call",
	}, false, "")
	if err != nil {
		t.Fatalf("LogInteraction failed: %v", err)
	}
	if len(res.Interaction.ContactIDs) != 1 || res.Interaction.ContactIDs[0] != alice.ID {
		t.Errorf("Name not resolved to id: %v", res.Interaction.ContactIDs)
	}

	// An unresolvable name is a hard error, not a silent skip.
	_, err = LogInteraction(ctx, st, NewInteraction{
		ContactNames: []string{"alice", "nobody whatsoever"},
		Date:         "2026-02-25",
	}, false, "")
	if !errors.Is(err, ErrReference) {
		t.Errorf("Expected ErrReference for unknown name, got %v", err)
	}

	_, err = LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{"missing-id"},
		Date:       "2026-02-25",
	}, false, "")
	if !errors.Is(err, ErrReference) {
		t.Errorf("Expected ErrReference for unknown id, got %v", err)
	}
}

func TestLogInteractionDeduplicatesParticipants(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})

	res, err := LogInteraction(ctx, st, NewInteraction{
		ContactIDs:   []string{alice.ID, alice.ID},
		ContactNames: []string{"alice"},
		Date:         "2026-02-25",
	}, false, "")
	if err != nil {
		t.Fatalf("LogInteraction failed: %v", err)
	}
	if len(res.Interaction.ContactIDs) != 1 {
		t.Errorf("Expected deduplicated participant set, got %v", res.Interaction.ContactIDs)
	}
}

func TestLogInteractionPrivateParticipant(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	zara := mustAddContact(t, st, NewContact{Name: "Zara Quiet", Private: true})
	if err := SetPrivacyKey(ctx, st, "", "sesame"); err != nil {
		t.Fatalf("SetPrivacyKey failed: %v", err)
	}

	_, err := LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{zara.ID}, Date: "2026-02-25",
	}, false, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for locked caller, got %v", err)
	}

	res, err := LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{zara.ID}, Date: "2026-02-25",
	}, false, "sesame")
	if err != nil {
		t.Fatalf("LogInteraction with key failed: %v", err)
	}
	if res.Interaction == nil {
		t.Error("Expected interaction created with key")
	}
}

func TestLogInteractionDuplicateWarning(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})
	bob := mustAddContact(t, st, NewContact{Name: "Bob Testington"})

	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID, bob.ID},
		Date:       "2026-02-25",
		Summary:    "Discussed conference planning details together",
	}, "")

	res, err := LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{alice.ID, bob.ID},
		Date:       "2026-02-26",
		Summary:    "More conference planning details discussed",
	}, false, "")
	if err != nil {
		t.Fatalf("LogInteraction failed: %v", err)
	}
	if res.Interaction != nil {
		t.Error("Expected no record created on duplicate warning")
	}
	if len(res.Duplicates) != 1 {
		t.Fatalf("Expected 1 duplicate match, got %d", len(res.Duplicates))
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		t.Fatalf("loadInteractions failed: %v", err)
	}
	if len(interactions) != 1 {
		t.Errorf("Expected interactions collection unchanged, got %d", len(interactions))
	}

	// forceCreate always succeeds regardless of similarity.
	res, err = LogInteraction(ctx, st, NewInteraction{
		ContactIDs: []string{alice.ID, bob.ID},
		Date:       "2026-02-26",
		Summary:    "More conference planning details discussed",
	}, true, "")
	if err != nil {
		t.Fatalf("LogInteraction with force failed: %v", err)
	}
	if res.Interaction == nil {
		t.Error("Expected forced creation to succeed")
	}
}

func TestLogInteractionDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})

	res := mustLogInteraction(t, st, NewInteraction{ContactIDs: []string{alice.ID}}, "")
	if res.Date != today() {
		t.Errorf("Expected date defaulted to today, got %s", res.Date)
	}
	if res.Type != models.DefaultInteractionType {
		t.Errorf("Expected default type, got %s", res.Type)
	}

	weird := mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID}, Date: "2026-02-25", Type: "semaphore",
	}, "")
	if weird.Type != models.InteractionOther {
		t.Errorf("Expected unknown type coerced to other, got %s", weird.Type)
	}
}

func TestEditInteractionRebuildsUnion(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	a := mustAddContact(t, st, NewContact{Name: "Ann Able"})
	b := mustAddContact(t, st, NewContact{Name: "Ben Brown"})
	c := mustAddContact(t, st, NewContact{Name: "Cal Cooper"})

	in := mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{a.ID, b.ID}, Date: "2026-02-25", Summary: "Planning chat",
	}, "")

	newIDs := []string{b.ID, c.ID}
	updated, err := EditInteraction(ctx, st, in.ID, InteractionPatch{ContactIDs: &newIDs}, "")
	if err != nil {
		t.Fatalf("EditInteraction failed: %v", err)
	}
	if updated.UpdatedAt == nil {
		t.Error("Expected UpdatedAt set on edit")
	}

	// The removed participant's summary reflects the loss; the added one gains.
	if s := summaryByID(t, st, a.ID); s == nil || s.InteractionCount != 0 {
		t.Errorf("Expected removed participant rebuilt to 0 interactions, got %+v", s)
	}
	if s := summaryByID(t, st, b.ID); s == nil || s.InteractionCount != 1 {
		t.Errorf("Expected kept participant at 1 interaction, got %+v", s)
	}
	if s := summaryByID(t, st, c.ID); s == nil || s.InteractionCount != 1 {
		t.Errorf("Expected added participant at 1 interaction, got %+v", s)
	}
}

func TestEditInteractionValidation(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	a := mustAddContact(t, st, NewContact{Name: "Ann Able"})
	in := mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{a.ID}, Date: "2026-02-25",
	}, "")

	if _, err := EditInteraction(ctx, st, "no-such-id", InteractionPatch{}, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	empty := []string{}
	if _, err := EditInteraction(ctx, st, in.ID, InteractionPatch{ContactIDs: &empty}, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for emptied participants, got %v", err)
	}

	bad := []string{"missing-id"}
	if _, err := EditInteraction(ctx, st, in.ID, InteractionPatch{ContactIDs: &bad}, ""); !errors.Is(err, ErrReference) {
		t.Errorf("Expected ErrReference, got %v", err)
	}
}

func TestEditInteractionPrivacyHidden(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	zara := mustAddContact(t, st, NewContact{Name: "Zara Quiet", Private: true})
	if err := SetPrivacyKey(ctx, st, "", "sesame"); err != nil {
		t.Fatalf("SetPrivacyKey failed: %v", err)
	}
	in := mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{zara.ID}, Date: "2026-02-25",
	}, "sesame")

	summary := "edited"
	if _, err := EditInteraction(ctx, st, in.ID, InteractionPatch{Summary: &summary}, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for locked caller, got %v", err)
	}

	if _, err := EditInteraction(ctx, st, in.ID, InteractionPatch{Summary: &summary}, "sesame"); err != nil {
		t.Errorf("Expected edit to succeed with key, got %v", err)
	}
}

func TestDeleteInteraction(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	a := mustAddContact(t, st, NewContact{Name: "Ann Able"})
	b := mustAddContact(t, st, NewContact{Name: "Ben Brown"})
	in := mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{a.ID, b.ID}, Date: "2026-02-25", Summary: "Team lunch",
	}, "")

	removed, err := DeleteInteraction(ctx, st, in.ID, "")
	if err != nil {
		t.Fatalf("DeleteInteraction failed: %v", err)
	}
	if removed.ID != in.ID {
		t.Error("Wrong interaction removed")
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		t.Fatalf("loadInteractions failed: %v", err)
	}
	if len(interactions) != 0 {
		t.Errorf("Expected empty interactions, got %d", len(interactions))
	}

	for _, id := range []string{a.ID, b.ID} {
		if s := summaryByID(t, st, id); s == nil || s.InteractionCount != 0 {
			t.Errorf("Expected %s rebuilt to 0 interactions, got %+v", id, s)
		}
	}

	if _, err := DeleteInteraction(ctx, st, in.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on retry, got %v", err)
	}
}

func TestListRecentInteractions(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})
	bob := mustAddContact(t, st, NewContact{Name: "Bob Testington"})
	zara := mustAddContact(t, st, NewContact{Name: "Zara Quiet", Private: true})
	if err := SetPrivacyKey(ctx, st, "", "sesame"); err != nil {
		t.Fatalf("SetPrivacyKey failed: %v", err)
	}

	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID}, Date: "2026-02-20", Type: "call", Summary: "Old call",
	}, "")
	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID, bob.ID}, Date: "2026-02-25", Type: "meeting", Summary: "Planning",
	}, "")
	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{zara.ID}, Date: "2026-02-26", Type: "call", Summary: "Hidden",
	}, "sesame")

	all, err := ListRecentInteractions(ctx, st, RecentOptions{})
	if err != nil {
		t.Fatalf("ListRecentInteractions failed: %v", err)
	}
	// The interaction with a private participant is hidden outright in listings.
	if len(all) != 2 {
		t.Fatalf("Expected 2 visible interactions, got %d", len(all))
	}
	if all[0].Date != "2026-02-25" || all[1].Date != "2026-02-20" {
		t.Errorf("Expected newest-first ordering, got %s then %s", all[0].Date, all[1].Date)
	}

	byType, err := ListRecentInteractions(ctx, st, RecentOptions{Type: "meeting"})
	if err != nil {
		t.Fatalf("ListRecentInteractions failed: %v", err)
	}
	if len(byType) != 1 || byType[0].Type != "meeting" {
		t.Errorf("Type filter failed: %v", byType)
	}

	since, err := ListRecentInteractions(ctx, st, RecentOptions{Since: "2026-02-25"})
	if err != nil {
		t.Fatalf("ListRecentInteractions failed: %v", err)
	}
	if len(since) != 1 {
		t.Errorf("Since filter failed: %v", since)
	}

	byContact, err := ListRecentInteractions(ctx, st, RecentOptions{Contact: "bob"})
	if err != nil {
		t.Fatalf("ListRecentInteractions failed: %v", err)
	}
	if len(byContact) != 1 {
		t.Errorf("Participant filter failed: %v", byContact)
	}

	withKey, err := ListRecentInteractions(ctx, st, RecentOptions{Key: "sesame"})
	if err != nil {
		t.Fatalf("ListRecentInteractions failed: %v", err)
	}
	if len(withKey) != 3 {
		t.Errorf("Expected all interactions visible with key, got %d", len(withKey))
	}
}

func TestListMentionedNextSteps(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	alice := mustAddContact(t, st, NewContact{Name: "Alice Testington"})

	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID}, Date: "2026-02-20", Summary: "Call",
		MentionedNextSteps: "Send the deck",
	}, "")
	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID}, Date: "2026-02-25", Summary: "Lunch",
	}, "")
	mustLogInteraction(t, st, NewInteraction{
		ContactIDs: []string{alice.ID}, Date: "2026-02-26", Summary: "Follow-up",
		MentionedNextSteps: "Book the venue",
	}, "")

	steps, err := ListMentionedNextSteps(ctx, st, 0, "")
	if err != nil {
		t.Fatalf("ListMentionedNextSteps failed: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("Expected 2 interactions with next steps, got %d", len(steps))
	}
	if steps[0].MentionedNextSteps != "Book the venue" {
		t.Errorf("Expected newest first, got %q", steps[0].MentionedNextSteps)
	}
}
