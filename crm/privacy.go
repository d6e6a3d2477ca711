// ABOUTME: Privacy filter for contacts and interactions
// ABOUTME: Pure visibility and redaction rules layered over the repositories
package crm

import "github.com/harperreed/rolo/models"

// Unlocked reports whether the provided key grants visibility into private
// records. An unconfigured key can never be unlocked: an empty provided key
// never counts as a valid match even against an empty configured key.
func Unlocked(providedKey string, cfg models.CrmConfig) bool {
	return cfg.PrivacyKey != "" && providedKey == cfg.PrivacyKey
}

// IsContactPrivate reports whether the contact is flagged private.
func IsContactPrivate(c *models.Contact) bool {
	return c.Private
}

// IsInteractionPrivate reports whether the interaction is private, either by
// its own flag or because any participant is a private contact.
func IsInteractionPrivate(in *models.Interaction, contacts map[string]*models.Contact) bool {
	if in.Private {
		return true
	}
	for _, id := range in.ContactIDs {
		if c, ok := contacts[id]; ok && c.Private {
			return true
		}
	}
	return false
}

// contactIndex builds an id lookup over a contacts snapshot.
func contactIndex(contacts []models.Contact) map[string]*models.Contact {
	idx := make(map[string]*models.Contact, len(contacts))
	for i := range contacts {
		idx[contacts[i].ID] = &contacts[i]
	}
	return idx
}

// visibleInteraction applies the listing-level rule: when locked, an
// interaction is hidden outright if it is private or has any private
// participant (all-or-nothing at the interaction level).
func visibleInteraction(in *models.Interaction, contacts map[string]*models.Contact, unlocked bool) bool {
	if unlocked {
		return true
	}
	return !IsInteractionPrivate(in, contacts)
}

// redactParticipants applies the detail-level rule: private co-participant
// ids are stripped from the participant projection while the interaction
// remains visible. The list-hide vs detail-redact asymmetry is intentional.
func redactParticipants(in models.Interaction, contacts map[string]*models.Contact, unlocked bool) models.Interaction {
	if unlocked {
		return in
	}
	kept := make([]string, 0, len(in.ContactIDs))
	for _, id := range in.ContactIDs {
		if c, ok := contacts[id]; ok && c.Private {
			continue
		}
		kept = append(kept, id)
	}
	in.ContactIDs = kept
	return in
}
