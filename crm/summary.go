// ABOUTME: Derived per-contact summary computation and batched rebuild
// ABOUTME: One read and one write of the summaries collection per logical event
package crm

import (
	"context"
	"sort"
	"strings"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

const (
	topTopicsLimit      = 5
	recentSummaryCount  = 3
	recentSummaryMaxLen = 100
)

// BuildSummary computes the derived summary for one contact from the full
// contacts and interactions snapshots. Returns nil if the contact is missing
// or private. Pure function: re-running it against unchanged data yields an
// identical result.
func BuildSummary(contactID string, contacts []models.Contact, interactions []models.Interaction) *models.ContactSummary {
	idx := contactIndex(contacts)
	contact, ok := idx[contactID]
	if !ok || contact.Private {
		return nil
	}

	// Qualifying interactions: reference this contact and are not private,
	// by their own flag or through a private co-participant. Same rule as
	// public listings.
	var qualifying []models.Interaction
	for _, in := range interactions {
		if in.HasParticipant(contactID) && !IsInteractionPrivate(&in, idx) {
			qualifying = append(qualifying, in)
		}
	}

	// Newest first. String comparison on YYYY-MM-DD is chronological.
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].Date > qualifying[j].Date
	})

	summary := &models.ContactSummary{
		ID:               contact.ID,
		Name:             contact.Name,
		Company:          contact.Company,
		Role:             contact.Role,
		Tags:             contact.Tags,
		Expertise:        contact.Expertise,
		Notes:            contact.Notes,
		InteractionCount: len(qualifying),
	}

	if len(qualifying) > 0 {
		summary.LastInteraction = qualifying[0].Date
		summary.FirstInteraction = qualifying[len(qualifying)-1].Date
	}

	summary.TopTopics = topTopics(qualifying)
	summary.Locations = uniqueLocations(qualifying)
	summary.RecentSummary = recentSummary(qualifying)

	for _, in := range qualifying {
		if in.MentionedNextSteps != "" {
			summary.MentionedNextSteps = append(summary.MentionedNextSteps, in.MentionedNextSteps)
		}
	}

	return summary
}

// topTopics ranks topics by descending frequency, capped at five. Frequency
// ties break alphabetically so the ranking is deterministic.
func topTopics(interactions []models.Interaction) []string {
	counts := make(map[string]int)
	for _, in := range interactions {
		for _, topic := range in.Topics {
			counts[topic]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})

	if len(topics) > topTopicsLimit {
		topics = topics[:topTopicsLimit]
	}
	return topics
}

func uniqueLocations(interactions []models.Interaction) []string {
	seen := make(map[string]bool)
	var locations []string
	for _, in := range interactions {
		if in.Location == "" || seen[in.Location] {
			continue
		}
		seen[in.Location] = true
		locations = append(locations, in.Location)
	}
	return locations
}

func recentSummary(interactions []models.Interaction) string {
	n := len(interactions)
	if n > recentSummaryCount {
		n = recentSummaryCount
	}
	parts := make([]string, 0, n)
	for _, in := range interactions[:n] {
		text := in.Summary
		if len(text) > recentSummaryMaxLen {
			text = text[:recentSummaryMaxLen]
		}
		parts = append(parts, in.Date+": "+text)
	}
	return strings.Join(parts, ". ")
}

// rebuildInto recomputes summary entries for the given contact ids against
// the provided snapshots and returns the new full summaries collection.
// Entries for ids whose contact is now missing or private are removed;
// entries for other contacts pass through untouched.
func rebuildInto(summaries []models.ContactSummary, ids []string, contacts []models.Contact, interactions []models.Interaction) []models.ContactSummary {
	affected := toSet(ids)

	rebuilt := make(map[string]*models.ContactSummary, len(ids))
	for id := range affected {
		rebuilt[id] = BuildSummary(id, contacts, interactions)
	}

	out := make([]models.ContactSummary, 0, len(summaries))
	replaced := make(map[string]bool, len(ids))
	for _, s := range summaries {
		if !affected[s.ID] {
			out = append(out, s)
			continue
		}
		replaced[s.ID] = true
		if ns := rebuilt[s.ID]; ns != nil {
			out = append(out, *ns)
		}
	}

	// New entries for affected ids not present before, in caller order.
	for _, id := range ids {
		if replaced[id] {
			continue
		}
		replaced[id] = true
		if ns := rebuilt[id]; ns != nil {
			out = append(out, *ns)
		}
	}

	return out
}

// rebuildAndWrite recomputes summaries for the affected ids using snapshots
// the caller already holds, as a single read-modify-write of the summaries
// collection. Per-id read-modify-write cycles would interleave against the
// non-transactional store and the last full-collection write would discard
// every other cycle's result, so the whole affected set goes through one pass.
func rebuildAndWrite(ctx context.Context, st store.Store, ids []string, contacts []models.Contact, interactions []models.Interaction) error {
	if len(ids) == 0 {
		return nil
	}
	summaries, err := loadSummaries(ctx, st)
	if err != nil {
		return err
	}
	return saveSummaries(ctx, st, rebuildInto(summaries, ids, contacts, interactions))
}

// RebuildSummaries recomputes the summary entries for the given contact ids
// from the current source-of-truth collections.
func RebuildSummaries(ctx context.Context, st store.Store, ids []string) error {
	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return err
	}
	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return err
	}
	return rebuildAndWrite(ctx, st, ids, contacts, interactions)
}

// RebuildAllSummaries regenerates the whole summaries collection from scratch.
// Self-healing path for stale or missing entries after a mid-sequence failure.
func RebuildAllSummaries(ctx context.Context, st store.Store) (int, error) {
	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return 0, err
	}
	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return 0, err
	}

	summaries := make([]models.ContactSummary, 0, len(contacts))
	for _, c := range contacts {
		if s := BuildSummary(c.ID, contacts, interactions); s != nil {
			summaries = append(summaries, *s)
		}
	}
	if err := saveSummaries(ctx, st, summaries); err != nil {
		return 0, err
	}
	return len(summaries), nil
}
