// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements search_contacts, get_contact, add_contact, update_contact, delete_contact
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	store store.Store
}

func NewContactHandlers(st store.Store) *ContactHandlers {
	return &ContactHandlers{store: st}
}

type ContactOutput struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Nickname    string              `json:"nickname,omitempty"`
	Company     string              `json:"company,omitempty"`
	Role        string              `json:"role,omitempty"`
	HowWeMet    string              `json:"how_we_met,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	ContactInfo *models.ContactInfo `json:"contact_info,omitempty"`
	Notes       []string            `json:"notes,omitempty"`
	Expertise   []string            `json:"expertise,omitempty"`
	Private     bool                `json:"private,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

func contactToOutput(c *models.Contact) ContactOutput {
	return ContactOutput{
		ID:          c.ID,
		Name:        c.Name,
		Nickname:    c.Nickname,
		Company:     c.Company,
		Role:        c.Role,
		HowWeMet:    c.HowWeMet,
		Tags:        c.Tags,
		ContactInfo: c.ContactInfo,
		Notes:       c.Notes,
		Expertise:   c.Expertise,
		Private:     c.Private,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func contactsToOutput(contacts []models.Contact) []ContactOutput {
	out := make([]ContactOutput, len(contacts))
	for i := range contacts {
		out[i] = contactToOutput(&contacts[i])
	}
	return out
}

type SearchContactsInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Free-text search across name, company, role, tags, expertise, and notes"`
	Tag        string `json:"tag,omitempty" jsonschema:"Filter by exact tag"`
	Company    string `json:"company,omitempty" jsonschema:"Filter by company name substring"`
	Expertise  string `json:"expertise,omitempty" jsonschema:"Filter by expertise substring"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to include private contacts"`
}

type SearchContactsOutput struct {
	Count    int             `json:"count"`
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) SearchContacts(ctx context.Context, request *mcp.CallToolRequest, input SearchContactsInput) (*mcp.CallToolResult, SearchContactsOutput, error) {
	contacts, err := crm.SearchContacts(ctx, h.store, crm.SearchOptions{
		Query:     input.Query,
		Tag:       input.Tag,
		Company:   input.Company,
		Expertise: input.Expertise,
		Limit:     input.Limit,
		Key:       input.PrivacyKey,
	})
	if err != nil {
		return nil, SearchContactsOutput{}, fmt.Errorf("failed to search contacts: %w", err)
	}

	return nil, SearchContactsOutput{
		Count:    len(contacts),
		Contacts: contactsToOutput(contacts),
	}, nil
}

type GetContactInput struct {
	Contact    string `json:"contact" jsonschema:"Contact id or name (required)"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

type GetContactOutput struct {
	Contact      ContactOutput          `json:"contact"`
	Summary      *models.ContactSummary `json:"summary,omitempty"`
	Interactions []InteractionOutput    `json:"interactions"`
}

func (h *ContactHandlers) GetContact(ctx context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, GetContactOutput, error) {
	detail, err := crm.GetContact(ctx, h.store, input.Contact, input.PrivacyKey)
	if err != nil {
		return nil, GetContactOutput{}, err
	}

	return nil, GetContactOutput{
		Contact:      contactToOutput(&detail.Contact),
		Summary:      detail.Summary,
		Interactions: interactionsToOutput(detail.Interactions),
	}, nil
}

type AddContactInput struct {
	Name           string   `json:"name" jsonschema:"Contact full name, at least two words (required)"`
	Nickname       string   `json:"nickname,omitempty" jsonschema:"Nickname"`
	Company        string   `json:"company,omitempty" jsonschema:"Company name"`
	Role           string   `json:"role,omitempty" jsonschema:"Role or title"`
	HowWeMet       string   `json:"how_we_met,omitempty" jsonschema:"How you met this person"`
	Tags           []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
	Email          string   `json:"email,omitempty" jsonschema:"Email address"`
	Phone          string   `json:"phone,omitempty" jsonschema:"Phone number"`
	Link           string   `json:"link,omitempty" jsonschema:"Profile or website link"`
	Notes          []string `json:"notes,omitempty" jsonschema:"Personal facts worth remembering"`
	Expertise      []string `json:"expertise,omitempty" jsonschema:"Knowledge areas"`
	Private        bool     `json:"private,omitempty" jsonschema:"Mark the contact private"`
	ForceDuplicate bool     `json:"force_duplicate,omitempty" jsonschema:"Create even if similar contacts exist"`
	PrivacyKey     string   `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

type AddContactOutput struct {
	Contact    *ContactOutput  `json:"contact,omitempty"`
	Duplicates []ContactOutput `json:"duplicates,omitempty"`
	Message    string          `json:"message,omitempty"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, AddContactOutput, error) {
	var info *models.ContactInfo
	if input.Email != "" || input.Phone != "" || input.Link != "" {
		info = &models.ContactInfo{Email: input.Email, Phone: input.Phone, Link: input.Link}
	}

	res, err := crm.AddContact(ctx, h.store, crm.NewContact{
		Name:        input.Name,
		Nickname:    input.Nickname,
		Company:     input.Company,
		Role:        input.Role,
		HowWeMet:    input.HowWeMet,
		Tags:        input.Tags,
		ContactInfo: info,
		Notes:       input.Notes,
		Expertise:   input.Expertise,
		Private:     input.Private,
	}, input.ForceDuplicate, input.PrivacyKey)
	if err != nil {
		return nil, AddContactOutput{}, err
	}

	if res.Contact == nil {
		return nil, AddContactOutput{
			Duplicates: contactsToOutput(res.Duplicates),
			Message:    fmt.Sprintf("Possible duplicates found (%d). Re-run with force_duplicate to create anyway.", len(res.Duplicates)),
		}, nil
	}

	out := contactToOutput(res.Contact)
	return nil, AddContactOutput{Contact: &out}, nil
}

type UpdateContactInput struct {
	Contact    string    `json:"contact" jsonschema:"Contact id or name (required)"`
	Name       *string   `json:"name,omitempty" jsonschema:"Updated name, at least two words"`
	Nickname   *string   `json:"nickname,omitempty" jsonschema:"Updated nickname"`
	Company    *string   `json:"company,omitempty" jsonschema:"Updated company"`
	Role       *string   `json:"role,omitempty" jsonschema:"Updated role"`
	HowWeMet   *string   `json:"how_we_met,omitempty" jsonschema:"Updated origin story"`
	Tags       *[]string `json:"tags,omitempty" jsonschema:"Replacement tag list"`
	Notes      *[]string `json:"notes,omitempty" jsonschema:"Replacement notes list"`
	Expertise  *[]string `json:"expertise,omitempty" jsonschema:"Replacement expertise list"`
	Email      *string   `json:"email,omitempty" jsonschema:"Updated email"`
	Phone      *string   `json:"phone,omitempty" jsonschema:"Updated phone"`
	Link       *string   `json:"link,omitempty" jsonschema:"Updated link"`
	Private    *bool     `json:"private,omitempty" jsonschema:"Updated private flag"`
	PrivacyKey string    `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := crm.UpdateContact(ctx, h.store, input.Contact, crm.ContactPatch{
		Name:      input.Name,
		Nickname:  input.Nickname,
		Company:   input.Company,
		Role:      input.Role,
		HowWeMet:  input.HowWeMet,
		Tags:      input.Tags,
		Notes:     input.Notes,
		Expertise: input.Expertise,
		Email:     input.Email,
		Phone:     input.Phone,
		Link:      input.Link,
		Private:   input.Private,
	}, input.PrivacyKey)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	return nil, contactToOutput(contact), nil
}

type DeleteContactInput struct {
	Contact    string `json:"contact" jsonschema:"Contact id or name (required)"`
	Cascade    bool   `json:"cascade,omitempty" jsonschema:"Also delete solo interactions and strip this contact from group interactions"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

type DeleteContactOutput struct {
	Contact             *ContactOutput `json:"contact,omitempty"`
	Blocked             bool           `json:"blocked,omitempty"`
	SoloInteractions    int            `json:"solo_interactions"`
	GroupInteractions   int            `json:"group_interactions"`
	RemovedInteractions int            `json:"removed_interactions,omitempty"`
	UpdatedInteractions int            `json:"updated_interactions,omitempty"`
	Message             string         `json:"message,omitempty"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, request *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteContactOutput, error) {
	res, err := crm.DeleteContact(ctx, h.store, input.Contact, input.Cascade, input.PrivacyKey)
	if err != nil {
		return nil, DeleteContactOutput{}, err
	}

	out := contactToOutput(res.Contact)
	if res.Blocked {
		return nil, DeleteContactOutput{
			Contact:           &out,
			Blocked:           true,
			SoloInteractions:  res.SoloCount,
			GroupInteractions: res.GroupCount,
			Message: fmt.Sprintf("Contact has %d solo and %d group interactions. Re-run with cascade to delete.",
				res.SoloCount, res.GroupCount),
		}, nil
	}

	return nil, DeleteContactOutput{
		Contact:             &out,
		SoloInteractions:    res.SoloCount,
		GroupInteractions:   res.GroupCount,
		RemovedInteractions: res.RemovedInteractions,
		UpdatedInteractions: res.UpdatedInteractions,
		Message:             fmt.Sprintf("Deleted contact: %s", res.Contact.Name),
	}, nil
}
