// ABOUTME: Interaction repository operations
// ABOUTME: Log, edit, delete, and listing over the interactions collection
package crm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

// NewInteraction carries the log_interaction fields. Participants come from
// ContactIDs, ContactNames, or both; names resolve through the same substring
// match as contact lookup.
type NewInteraction struct {
	ContactIDs         []string
	ContactNames       []string
	Date               string // YYYY-MM-DD, defaults to today
	Type               string // defaults to catch-up, unknown types become other
	Summary            string
	Topics             []string
	MentionedNextSteps string
	Location           string
	Private            bool
}

// LogResult is either a created interaction or a non-fatal duplicate warning
// carrying the suspected matches. Exactly one of the two is populated.
type LogResult struct {
	Interaction *models.Interaction
	Duplicates  []models.Interaction
}

// LogInteraction records one interaction for the resolved participant set and
// rebuilds every participant's summary in a single batch. Without forceCreate,
// suspected duplicates turn the call into a warning and nothing is stored.
func LogInteraction(ctx context.Context, st store.Store, ni NewInteraction, forceCreate bool, key string) (*LogResult, error) {
	if len(ni.ContactIDs) == 0 && len(ni.ContactNames) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrValidation)
	}

	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(key, cfg)

	idx := contactIndex(contacts)
	var participants []string
	seen := make(map[string]bool)

	for _, id := range ni.ContactIDs {
		if _, ok := idx[id]; !ok {
			return nil, fmt.Errorf("%w: contact id %q", ErrReference, id)
		}
		if !seen[id] {
			seen[id] = true
			participants = append(participants, id)
		}
	}
	for _, name := range ni.ContactNames {
		c := resolveContact(contacts, name)
		if c == nil {
			return nil, fmt.Errorf("%w: contact name %q", ErrReference, name)
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			participants = append(participants, c.ID)
		}
	}

	// A locked caller cannot log against a private contact; the failure is
	// the same not-found signal a genuinely absent contact produces.
	if !unlocked {
		for _, id := range participants {
			if idx[id].Private {
				return nil, fmt.Errorf("%w: contact %q", ErrNotFound, id)
			}
		}
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	date := ni.Date
	if date == "" {
		date = today()
	}

	if !forceCreate {
		if dupes := FindDuplicateInteractions(participants, date, ni.Summary, interactions); len(dupes) > 0 {
			return &LogResult{Duplicates: dupes}, nil
		}
	}

	interaction := models.Interaction{
		ID:                 newInteractionID(),
		ContactIDs:         participants,
		Date:               date,
		Type:               models.NormalizeInteractionType(ni.Type),
		Summary:            ni.Summary,
		Topics:             ni.Topics,
		MentionedNextSteps: ni.MentionedNextSteps,
		Location:           ni.Location,
		Private:            ni.Private,
		CreatedAt:          time.Now(),
	}
	interactions = append(interactions, interaction)

	if err := saveInteractions(ctx, st, interactions); err != nil {
		return nil, err
	}
	if err := rebuildAndWrite(ctx, st, participants, contacts, interactions); err != nil {
		return nil, err
	}

	return &LogResult{Interaction: &interaction}, nil
}

// InteractionPatch is the closed update type for edit_interaction. Nil slots
// leave the field untouched; ContactIDs replaces the whole participant list.
type InteractionPatch struct {
	ContactIDs         *[]string
	Date               *string
	Type               *string
	Summary            *string
	Topics             *[]string
	MentionedNextSteps *string
	Location           *string
	Private            *bool
}

// EditInteraction applies the patch and rebuilds summaries for the union of
// the pre-edit and post-edit participant sets, so a participant removed by
// the edit still has its summary recomputed to reflect the loss.
func EditInteraction(ctx context.Context, st store.Store, id string, patch InteractionPatch, key string) (*models.Interaction, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: interaction id is required", ErrValidation)
	}

	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(key, cfg)
	idx := contactIndex(contacts)

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	var target *models.Interaction
	for i := range interactions {
		if interactions[i].ID == id {
			target = &interactions[i]
			break
		}
	}
	if target == nil || (!unlocked && IsInteractionPrivate(target, idx)) {
		return nil, fmt.Errorf("%w: interaction %q", ErrNotFound, id)
	}

	before := append([]string(nil), target.ContactIDs...)

	if patch.ContactIDs != nil {
		var newIDs []string
		seen := make(map[string]bool)
		for _, cid := range *patch.ContactIDs {
			if _, ok := idx[cid]; !ok {
				return nil, fmt.Errorf("%w: contact id %q", ErrReference, cid)
			}
			if !seen[cid] {
				seen[cid] = true
				newIDs = append(newIDs, cid)
			}
		}
		if len(newIDs) == 0 {
			return nil, fmt.Errorf("%w: participant list cannot be emptied", ErrValidation)
		}
		target.ContactIDs = newIDs
	}
	if patch.Date != nil {
		target.Date = *patch.Date
	}
	if patch.Type != nil {
		target.Type = models.NormalizeInteractionType(*patch.Type)
	}
	if patch.Summary != nil {
		target.Summary = *patch.Summary
	}
	if patch.Topics != nil {
		target.Topics = *patch.Topics
	}
	if patch.MentionedNextSteps != nil {
		target.MentionedNextSteps = *patch.MentionedNextSteps
	}
	if patch.Location != nil {
		target.Location = *patch.Location
	}
	if patch.Private != nil {
		target.Private = *patch.Private
	}

	now := time.Now()
	target.UpdatedAt = &now

	if err := saveInteractions(ctx, st, interactions); err != nil {
		return nil, err
	}

	affected := append(before, target.ContactIDs...)
	if err := rebuildAndWrite(ctx, st, affected, contacts, interactions); err != nil {
		return nil, err
	}

	return target, nil
}

// DeleteInteraction removes one interaction and rebuilds summaries for its
// full participant set at time of deletion.
func DeleteInteraction(ctx context.Context, st store.Store, id, key string) (*models.Interaction, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: interaction id is required", ErrValidation)
	}

	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(key, cfg)
	idx := contactIndex(contacts)

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	var removed *models.Interaction
	remaining := make([]models.Interaction, 0, len(interactions))
	for _, in := range interactions {
		if in.ID == id {
			r := in
			removed = &r
			continue
		}
		remaining = append(remaining, in)
	}
	if removed == nil || (!unlocked && IsInteractionPrivate(removed, idx)) {
		return nil, fmt.Errorf("%w: interaction %q", ErrNotFound, id)
	}

	if err := saveInteractions(ctx, st, remaining); err != nil {
		return nil, err
	}
	if err := rebuildAndWrite(ctx, st, removed.ContactIDs, contacts, remaining); err != nil {
		return nil, err
	}

	return removed, nil
}

// RecentOptions narrows get_recent_interactions.
type RecentOptions struct {
	Contact string // participant id or name
	Since   string // minimum date, inclusive
	Type    string
	Limit   int
	Key     string
}

// ListRecentInteractions returns privacy-filtered interactions newest-first.
func ListRecentInteractions(ctx context.Context, st store.Store, opts RecentOptions) ([]models.Interaction, error) {
	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(opts.Key, cfg)
	idx := contactIndex(contacts)

	var participant string
	if opts.Contact != "" {
		c := resolveContact(contacts, opts.Contact)
		if c == nil || (c.Private && !unlocked) {
			return nil, fmt.Errorf("%w: contact %q", ErrNotFound, opts.Contact)
		}
		participant = c.ID
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var results []models.Interaction
	for _, in := range interactions {
		if !visibleInteraction(&in, idx, unlocked) {
			continue
		}
		if participant != "" && !in.HasParticipant(participant) {
			continue
		}
		if opts.Since != "" && in.Date < opts.Since {
			continue
		}
		if opts.Type != "" && in.Type != opts.Type {
			continue
		}
		results = append(results, redactParticipants(in, idx, unlocked))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ListMentionedNextSteps returns privacy-filtered interactions carrying a
// mentioned next step, newest-first.
func ListMentionedNextSteps(ctx context.Context, st store.Store, limit int, key string) ([]models.Interaction, error) {
	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(key, cfg)
	idx := contactIndex(contacts)

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var results []models.Interaction
	for _, in := range interactions {
		if in.MentionedNextSteps == "" {
			continue
		}
		if !visibleInteraction(&in, idx, unlocked) {
			continue
		}
		results = append(results, redactParticipants(in, idx, unlocked))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
