// ABOUTME: Interaction MCP tool handlers
// ABOUTME: Implements log_interaction, edit_interaction, delete_interaction, get_recent_interactions, get_mentioned_next_steps
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type InteractionHandlers struct {
	store store.Store
}

func NewInteractionHandlers(st store.Store) *InteractionHandlers {
	return &InteractionHandlers{store: st}
}

type InteractionOutput struct {
	ID                 string   `json:"id"`
	ContactIDs         []string `json:"contact_ids"`
	Date               string   `json:"date"`
	Type               string   `json:"type"`
	Summary            string   `json:"summary"`
	Topics             []string `json:"topics,omitempty"`
	MentionedNextSteps string   `json:"mentioned_next_steps,omitempty"`
	Location           string   `json:"location,omitempty"`
	Private            bool     `json:"private,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

func interactionToOutput(in *models.Interaction) InteractionOutput {
	out := InteractionOutput{
		ID:                 in.ID,
		ContactIDs:         in.ContactIDs,
		Date:               in.Date,
		Type:               in.Type,
		Summary:            in.Summary,
		Topics:             in.Topics,
		MentionedNextSteps: in.MentionedNextSteps,
		Location:           in.Location,
		Private:            in.Private,
		CreatedAt:          in.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if in.UpdatedAt != nil {
		out.UpdatedAt = in.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return out
}

func interactionsToOutput(interactions []models.Interaction) []InteractionOutput {
	out := make([]InteractionOutput, len(interactions))
	for i := range interactions {
		out[i] = interactionToOutput(&interactions[i])
	}
	return out
}

type LogInteractionInput struct {
	ContactIDs         []string `json:"contact_ids,omitempty" jsonschema:"Participant contact ids"`
	ContactNames       []string `json:"contact_names,omitempty" jsonschema:"Participant names, resolved to contacts"`
	Date               string   `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD form (default today)"`
	Type               string   `json:"type,omitempty" jsonschema:"Interaction type: catch-up, meeting, call, message, event, or other"`
	Summary            string   `json:"summary" jsonschema:"What happened (required)"`
	Topics             []string `json:"topics,omitempty" jsonschema:"Topics discussed"`
	MentionedNextSteps string   `json:"mentioned_next_steps,omitempty" jsonschema:"Anything the other party said they would do"`
	Location           string   `json:"location,omitempty" jsonschema:"Where it happened"`
	Private            bool     `json:"private,omitempty" jsonschema:"Mark the interaction private"`
	ForceDuplicate     bool     `json:"force_duplicate,omitempty" jsonschema:"Log even if a similar interaction exists"`
	PrivacyKey         string   `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

type LogInteractionOutput struct {
	Interaction *InteractionOutput  `json:"interaction,omitempty"`
	Duplicates  []InteractionOutput `json:"duplicates,omitempty"`
	Message     string              `json:"message,omitempty"`
}

func (h *InteractionHandlers) LogInteraction(ctx context.Context, request *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, LogInteractionOutput, error) {
	res, err := crm.LogInteraction(ctx, h.store, crm.NewInteraction{
		ContactIDs:         input.ContactIDs,
		ContactNames:       input.ContactNames,
		Date:               input.Date,
		Type:               input.Type,
		Summary:            input.Summary,
		Topics:             input.Topics,
		MentionedNextSteps: input.MentionedNextSteps,
		Location:           input.Location,
		Private:            input.Private,
	}, input.ForceDuplicate, input.PrivacyKey)
	if err != nil {
		return nil, LogInteractionOutput{}, err
	}

	if res.Interaction == nil {
		return nil, LogInteractionOutput{
			Duplicates: interactionsToOutput(res.Duplicates),
			Message:    fmt.Sprintf("Possible duplicates found (%d). Re-run with force_duplicate to log anyway.", len(res.Duplicates)),
		}, nil
	}

	out := interactionToOutput(res.Interaction)
	return nil, LogInteractionOutput{Interaction: &out}, nil
}

type EditInteractionInput struct {
	ID                 string    `json:"id" jsonschema:"Interaction id (required)"`
	ContactIDs         *[]string `json:"contact_ids,omitempty" jsonschema:"Replacement participant id list"`
	Date               *string   `json:"date,omitempty" jsonschema:"Updated date in YYYY-MM-DD form"`
	Type               *string   `json:"type,omitempty" jsonschema:"Updated interaction type"`
	Summary            *string   `json:"summary,omitempty" jsonschema:"Updated summary"`
	Topics             *[]string `json:"topics,omitempty" jsonschema:"Replacement topic list"`
	MentionedNextSteps *string   `json:"mentioned_next_steps,omitempty" jsonschema:"Updated next steps"`
	Location           *string   `json:"location,omitempty" jsonschema:"Updated location"`
	Private            *bool     `json:"private,omitempty" jsonschema:"Updated private flag"`
	PrivacyKey         string    `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

func (h *InteractionHandlers) EditInteraction(ctx context.Context, request *mcp.CallToolRequest, input EditInteractionInput) (*mcp.CallToolResult, InteractionOutput, error) {
	in, err := crm.EditInteraction(ctx, h.store, input.ID, crm.InteractionPatch{
		ContactIDs:         input.ContactIDs,
		Date:               input.Date,
		Type:               input.Type,
		Summary:            input.Summary,
		Topics:             input.Topics,
		MentionedNextSteps: input.MentionedNextSteps,
		Location:           input.Location,
		Private:            input.Private,
	}, input.PrivacyKey)
	if err != nil {
		return nil, InteractionOutput{}, err
	}

	return nil, interactionToOutput(in), nil
}

type DeleteInteractionInput struct {
	ID         string `json:"id" jsonschema:"Interaction id (required)"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to access private records"`
}

type DeleteInteractionOutput struct {
	Interaction InteractionOutput `json:"interaction"`
	Message     string            `json:"message"`
}

func (h *InteractionHandlers) DeleteInteraction(ctx context.Context, request *mcp.CallToolRequest, input DeleteInteractionInput) (*mcp.CallToolResult, DeleteInteractionOutput, error) {
	in, err := crm.DeleteInteraction(ctx, h.store, input.ID, input.PrivacyKey)
	if err != nil {
		return nil, DeleteInteractionOutput{}, err
	}

	return nil, DeleteInteractionOutput{
		Interaction: interactionToOutput(in),
		Message:     fmt.Sprintf("Deleted interaction: %s", in.ID),
	}, nil
}

type GetRecentInteractionsInput struct {
	Contact    string `json:"contact,omitempty" jsonschema:"Limit to a single contact by id or name"`
	Since      string `json:"since,omitempty" jsonschema:"Only interactions on or after this YYYY-MM-DD date"`
	Type       string `json:"type,omitempty" jsonschema:"Filter by interaction type"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to include private records"`
}

type GetRecentInteractionsOutput struct {
	Count        int                 `json:"count"`
	Interactions []InteractionOutput `json:"interactions"`
}

func (h *InteractionHandlers) GetRecentInteractions(ctx context.Context, request *mcp.CallToolRequest, input GetRecentInteractionsInput) (*mcp.CallToolResult, GetRecentInteractionsOutput, error) {
	interactions, err := crm.ListRecentInteractions(ctx, h.store, crm.RecentOptions{
		Contact: input.Contact,
		Since:   input.Since,
		Type:    input.Type,
		Limit:   input.Limit,
		Key:     input.PrivacyKey,
	})
	if err != nil {
		return nil, GetRecentInteractionsOutput{}, fmt.Errorf("failed to list interactions: %w", err)
	}

	return nil, GetRecentInteractionsOutput{
		Count:        len(interactions),
		Interactions: interactionsToOutput(interactions),
	}, nil
}

type GetMentionedNextStepsInput struct {
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
	PrivacyKey string `json:"privacy_key,omitempty" jsonschema:"Privacy key to include private records"`
}

type GetMentionedNextStepsOutput struct {
	Count        int                 `json:"count"`
	Interactions []InteractionOutput `json:"interactions"`
}

func (h *InteractionHandlers) GetMentionedNextSteps(ctx context.Context, request *mcp.CallToolRequest, input GetMentionedNextStepsInput) (*mcp.CallToolResult, GetMentionedNextStepsOutput, error) {
	interactions, err := crm.ListMentionedNextSteps(ctx, h.store, input.Limit, input.PrivacyKey)
	if err != nil {
		return nil, GetMentionedNextStepsOutput{}, fmt.Errorf("failed to list next steps: %w", err)
	}

	return nil, GetMentionedNextStepsOutput{
		Count:        len(interactions),
		Interactions: interactionsToOutput(interactions),
	}, nil
}
