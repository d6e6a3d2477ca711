// ABOUTME: Data models for relationship-tracking entities
// ABOUTME: Defines Contact, Interaction, ContactSummary, and CrmConfig structs
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContactInfo holds the reachable coordinates for a contact.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Link  string `json:"link,omitempty"`
}

type Contact struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Nickname    string       `json:"nickname,omitempty"`
	Company     string       `json:"company,omitempty"`
	Role        string       `json:"role,omitempty"`
	HowWeMet    string       `json:"how_we_met,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
	Notes       []string     `json:"notes,omitempty"`
	Expertise   []string     `json:"expertise,omitempty"`
	Private     bool         `json:"private,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Interaction struct {
	ID                 string     `json:"id"`
	ContactIDs         []string   `json:"contact_ids"`
	Date               string     `json:"date"` // YYYY-MM-DD, lexicographically sortable
	Type               string     `json:"type"`
	Summary            string     `json:"summary,omitempty"`
	Topics             []string   `json:"topics,omitempty"`
	MentionedNextSteps string     `json:"mentioned_next_steps,omitempty"`
	Location           string     `json:"location,omitempty"`
	Private            bool       `json:"private,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"` // set only on edit
}

// UnmarshalJSON accepts both the current list shape for contact_ids and the
// legacy single-id shapes (scalar contact_ids, or an older contact_id field).
// Writes always use the list shape.
func (i *Interaction) UnmarshalJSON(data []byte) error {
	type alias Interaction
	aux := struct {
		*alias
		ContactIDs      json.RawMessage `json:"contact_ids"`
		LegacyContactID string          `json:"contact_id"`
	}{alias: (*alias)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	i.ContactIDs = nil
	switch {
	case len(aux.ContactIDs) > 0 && string(aux.ContactIDs) != "null":
		var list []string
		if err := json.Unmarshal(aux.ContactIDs, &list); err == nil {
			i.ContactIDs = list
			return nil
		}
		var single string
		if err := json.Unmarshal(aux.ContactIDs, &single); err != nil {
			return fmt.Errorf("invalid contact_ids: %w", err)
		}
		if single != "" {
			i.ContactIDs = []string{single}
		}
	case aux.LegacyContactID != "":
		i.ContactIDs = []string{aux.LegacyContactID}
	}
	return nil
}

// HasParticipant reports whether the contact id appears in the participant list.
func (i *Interaction) HasParticipant(id string) bool {
	for _, cid := range i.ContactIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// ContactSummary is a derived index entry, one per non-private contact.
// It is a cache recomputed from contacts + interactions, never a source of truth.
type ContactSummary struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Company            string   `json:"company,omitempty"`
	Role               string   `json:"role,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Expertise          []string `json:"expertise,omitempty"`
	Notes              []string `json:"notes,omitempty"`
	InteractionCount   int      `json:"interaction_count"`
	LastInteraction    string   `json:"last_interaction,omitempty"`
	FirstInteraction   string   `json:"first_interaction,omitempty"`
	TopTopics          []string `json:"top_topics,omitempty"`
	Locations          []string `json:"locations,omitempty"`
	RecentSummary      string   `json:"recent_summary,omitempty"`
	MentionedNextSteps []string `json:"mentioned_next_steps,omitempty"`
}

// CrmConfig is the single-value process config. An empty PrivacyKey means no
// key is configured and nothing can be unlocked.
type CrmConfig struct {
	PrivacyKey string `json:"privacy_key,omitempty"`
}

// Interaction type constants.
const (
	InteractionCatchUp = "catch-up"
	InteractionMeeting = "meeting"
	InteractionCall    = "call"
	InteractionMessage = "message"
	InteractionEvent   = "event"
	InteractionOther   = "other"
)

// DefaultInteractionType is used when log_interaction omits a type.
const DefaultInteractionType = InteractionCatchUp

// NormalizeInteractionType coerces unknown type strings to InteractionOther
// and an empty string to the default.
func NormalizeInteractionType(t string) string {
	switch t {
	case "":
		return DefaultInteractionType
	case InteractionCatchUp, InteractionMeeting, InteractionCall,
		InteractionMessage, InteractionEvent, InteractionOther:
		return t
	default:
		return InteractionOther
	}
}
