// ABOUTME: Contact repository operations
// ABOUTME: Search, get, add, update, and cascading delete over the contacts collection
package crm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

const defaultSearchLimit = 20

// SearchOptions narrows a full-scan contact search. All provided filters must
// match; an empty options struct matches every visible contact.
type SearchOptions struct {
	Query     string // substring across profile fields, tags, expertise, notes
	Tag       string // exact tag
	Company   string // company substring
	Expertise string // expertise substring
	Limit     int
	Key       string // privacy key, grants visibility into private contacts
}

// SearchContacts scans the contacts collection, privacy-filtered, and returns
// up to Limit matches.
func SearchContacts(ctx context.Context, st store.Store, opts SearchOptions) ([]models.Contact, error) {
	contacts, err := loadContacts(ctx, st)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, st)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(opts.Key, cfg)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var results []models.Contact
	for _, c := range contacts {
		if c.Private && !unlocked {
			continue
		}
		if !matchesSearch(&c, opts) {
			continue
		}
		results = append(results, c)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func matchesSearch(c *models.Contact, opts SearchOptions) bool {
	if opts.Query != "" && !matchesQuery(c, opts.Query) {
		return false
	}
	if opts.Tag != "" && !hasTag(c, opts.Tag) {
		return false
	}
	if opts.Company != "" && !containsFold(c.Company, opts.Company) {
		return false
	}
	if opts.Expertise != "" && !anyContainsFold(c.Expertise, opts.Expertise) {
		return false
	}
	return true
}

func matchesQuery(c *models.Contact, query string) bool {
	if containsFold(c.Name, query) ||
		containsFold(c.Nickname, query) ||
		containsFold(c.Company, query) ||
		containsFold(c.Role, query) ||
		containsFold(c.HowWeMet, query) {
		return true
	}
	return anyContainsFold(c.Tags, query) ||
		anyContainsFold(c.Expertise, query) ||
		anyContainsFold(c.Notes, query)
}

func hasTag(c *models.Contact, tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}

// resolveContact finds one contact by exact id, or by the first
// case-insensitive substring match on name or nickname. Returns nil if
// nothing matches. Privacy is the caller's concern.
func resolveContact(contacts []models.Contact, idOrName string) *models.Contact {
	for i := range contacts {
		if contacts[i].ID == idOrName {
			return &contacts[i]
		}
	}
	for i := range contacts {
		if containsFold(contacts[i].Name, idOrName) || containsFold(contacts[i].Nickname, idOrName) {
			return &contacts[i]
		}
	}
	return nil
}

// ContactDetail is the get_contact projection: the contact, its derived
// summary entry, and its interaction history newest-first with private
// co-participants redacted.
type ContactDetail struct {
	Contact      models.Contact
	Summary      *models.ContactSummary
	Interactions []models.Interaction
}

// GetContact resolves one contact by id or name. A private contact behind a
// locked caller reports ErrNotFound, indistinguishable from a missing record.
func GetContact(ctx context.Context, st store.Store, idOrName, key string) (*ContactDetail, error) {
	if idOrName == "" {
		return nil, fmt.Errorf("%w: id or name is required", ErrValidation)
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

	contact := resolveContact(contacts, idOrName)
	if contact == nil || (contact.Private && !unlocked) {
		return nil, fmt.Errorf("%w: contact %q", ErrNotFound, idOrName)
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}
	idx := contactIndex(contacts)

	var history []models.Interaction
	for _, in := range interactions {
		if !in.HasParticipant(contact.ID) {
			continue
		}
		// An interaction flagged private stays hidden from a locked caller.
		// One with a private co-participant stays visible here, with the
		// private ids stripped; listings hide it outright instead.
		if in.Private && !unlocked {
			continue
		}
		history = append(history, redactParticipants(in, idx, unlocked))
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})

	summaries, err := loadSummaries(ctx, st)
	if err != nil {
		return nil, err
	}
	detail := &ContactDetail{Contact: *contact, Interactions: history}
	for i := range summaries {
		if summaries[i].ID == contact.ID {
			detail.Summary = &summaries[i]
			break
		}
	}
	return detail, nil
}

// NewContact carries the add_contact fields.
type NewContact struct {
	Name        string
	Nickname    string
	Company     string
	Role        string
	HowWeMet    string
	Tags        []string
	ContactInfo *models.ContactInfo
	Notes       []string
	Expertise   []string
	Private     bool
}

// AddContactResult is either a created contact or a non-fatal duplicate
// warning carrying the matches. Exactly one of the two is populated.
type AddContactResult struct {
	Contact    *models.Contact
	Duplicates []models.Contact
}

// AddContact validates and stores a new contact, then rebuilds its summary.
// Without forceDuplicate, any existing contact matching the new name by the
// same substring search used by SearchContacts turns the call into a warning
// and nothing is created.
func AddContact(ctx context.Context, st store.Store, nc NewContact, forceDuplicate bool, key string) (*AddContactResult, error) {
	if len(strings.Fields(strings.TrimSpace(nc.Name))) < 2 {
		return nil, fmt.Errorf("%w: name must have at least two words, got %q", ErrValidation, nc.Name)
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

	if !forceDuplicate {
		var dupes []models.Contact
		for _, c := range contacts {
			if c.Private && !unlocked {
				continue
			}
			if matchesQuery(&c, nc.Name) {
				dupes = append(dupes, c)
			}
		}
		if len(dupes) > 0 {
			return &AddContactResult{Duplicates: dupes}, nil
		}
	}

	now := time.Now()
	contact := models.Contact{
		ID:          newContactID(),
		Name:        strings.TrimSpace(nc.Name),
		Nickname:    nc.Nickname,
		Company:     nc.Company,
		Role:        nc.Role,
		HowWeMet:    nc.HowWeMet,
		Tags:        nc.Tags,
		ContactInfo: nc.ContactInfo,
		Notes:       nc.Notes,
		Expertise:   nc.Expertise,
		Private:     nc.Private,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	contacts = append(contacts, contact)

	if err := saveContacts(ctx, st, contacts); err != nil {
		return nil, err
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}
	if err := rebuildAndWrite(ctx, st, []string{contact.ID}, contacts, interactions); err != nil {
		return nil, err
	}

	return &AddContactResult{Contact: &contact}, nil
}

// ContactPatch is the closed update type: one optional slot per mutable
// field. Nil slots leave the field untouched.
type ContactPatch struct {
	Name      *string
	Nickname  *string
	Company   *string
	Role      *string
	HowWeMet  *string
	Tags      *[]string
	Notes     *[]string
	Expertise *[]string
	Email     *string
	Phone     *string
	Link      *string
	Private   *bool
}

// UpdateContact merges the patch into the resolved contact and rebuilds its
// summary entry.
func UpdateContact(ctx context.Context, st store.Store, idOrName string, patch ContactPatch, key string) (*models.Contact, error) {
	if idOrName == "" {
		return nil, fmt.Errorf("%w: id or name is required", ErrValidation)
	}
	if patch.Name != nil && len(strings.Fields(strings.TrimSpace(*patch.Name))) < 2 {
		return nil, fmt.Errorf("%w: name must have at least two words, got %q", ErrValidation, *patch.Name)
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

	contact := resolveContact(contacts, idOrName)
	if contact == nil || (contact.Private && !unlocked) {
		return nil, fmt.Errorf("%w: contact %q", ErrNotFound, idOrName)
	}

	applyContactPatch(contact, patch)
	contact.UpdatedAt = time.Now()

	if err := saveContacts(ctx, st, contacts); err != nil {
		return nil, err
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}
	if err := rebuildAndWrite(ctx, st, []string{contact.ID}, contacts, interactions); err != nil {
		return nil, err
	}

	return contact, nil
}

func applyContactPatch(c *models.Contact, patch ContactPatch) {
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Nickname != nil {
		c.Nickname = *patch.Nickname
	}
	if patch.Company != nil {
		c.Company = *patch.Company
	}
	if patch.Role != nil {
		c.Role = *patch.Role
	}
	if patch.HowWeMet != nil {
		c.HowWeMet = *patch.HowWeMet
	}
	if patch.Tags != nil {
		c.Tags = *patch.Tags
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	if patch.Expertise != nil {
		c.Expertise = *patch.Expertise
	}
	if patch.Email != nil || patch.Phone != nil || patch.Link != nil {
		if c.ContactInfo == nil {
			c.ContactInfo = &models.ContactInfo{}
		}
		if patch.Email != nil {
			c.ContactInfo.Email = *patch.Email
		}
		if patch.Phone != nil {
			c.ContactInfo.Phone = *patch.Phone
		}
		if patch.Link != nil {
			c.ContactInfo.Link = *patch.Link
		}
	}
	if patch.Private != nil {
		c.Private = *patch.Private
	}
}

// DeleteContactResult reports either a pre-mutation warning (Blocked with the
// reference counts) or the outcome of a cascade delete.
type DeleteContactResult struct {
	Contact             *models.Contact
	Blocked             bool
	SoloCount           int // interactions where this contact was the only participant
	GroupCount          int // interactions shared with other contacts
	RemovedInteractions int
	UpdatedInteractions int
}

// DeleteContact removes a contact. Without cascade, any referencing
// interaction blocks the delete: the warning with solo/group counts is
// computed and returned before anything is mutated, and no collection is
// written. With cascade, solo interactions are deleted, group interactions
// are stripped of this participant, and summaries are rebuilt in one batch
// for every contact left behind in an edited interaction.
func DeleteContact(ctx context.Context, st store.Store, idOrName string, cascade bool, key string) (*DeleteContactResult, error) {
	if idOrName == "" {
		return nil, fmt.Errorf("%w: id or name is required", ErrValidation)
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

	contact := resolveContact(contacts, idOrName)
	if contact == nil || (contact.Private && !unlocked) {
		return nil, fmt.Errorf("%w: contact %q", ErrNotFound, idOrName)
	}

	interactions, err := loadInteractions(ctx, st)
	if err != nil {
		return nil, err
	}

	var solo, group int
	for _, in := range interactions {
		if !in.HasParticipant(contact.ID) {
			continue
		}
		if len(toSet(in.ContactIDs)) == 1 {
			solo++
		} else {
			group++
		}
	}

	// Check-then-act: the warning must be decided before any mutation.
	if !cascade && solo+group > 0 {
		return &DeleteContactResult{
			Contact:    contact,
			Blocked:    true,
			SoloCount:  solo,
			GroupCount: group,
		}, nil
	}

	removed := *contact
	result := &DeleteContactResult{
		Contact:    &removed,
		SoloCount:  solo,
		GroupCount: group,
	}

	newContacts := make([]models.Contact, 0, len(contacts)-1)
	for _, c := range contacts {
		if c.ID != removed.ID {
			newContacts = append(newContacts, c)
		}
	}

	now := time.Now()
	affected := []string{removed.ID}
	newInteractions := make([]models.Interaction, 0, len(interactions))
	for _, in := range interactions {
		if !in.HasParticipant(removed.ID) {
			newInteractions = append(newInteractions, in)
			continue
		}
		if len(toSet(in.ContactIDs)) == 1 {
			result.RemovedInteractions++
			continue
		}
		kept := make([]string, 0, len(in.ContactIDs)-1)
		for _, id := range in.ContactIDs {
			if id != removed.ID {
				kept = append(kept, id)
			}
		}
		in.ContactIDs = kept
		in.UpdatedAt = &now
		result.UpdatedInteractions++
		for _, id := range kept {
			affected = append(affected, id)
		}
		newInteractions = append(newInteractions, in)
	}

	if err := saveContacts(ctx, st, newContacts); err != nil {
		return nil, err
	}
	if solo+group > 0 {
		if err := saveInteractions(ctx, st, newInteractions); err != nil {
			return nil, err
		}
	}
	if err := rebuildAndWrite(ctx, st, affected, newContacts, newInteractions); err != nil {
		return nil, err
	}

	return result, nil
}
