// ABOUTME: Privacy MCP tool handler
// ABOUTME: Implements manage_privacy with status and set_key actions
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PrivacyHandlers struct {
	store store.Store
}

func NewPrivacyHandlers(st store.Store) *PrivacyHandlers {
	return &PrivacyHandlers{store: st}
}

type ManagePrivacyInput struct {
	Action     string `json:"action" jsonschema:"Either status or set_key (required)"`
	CurrentKey string `json:"current_key,omitempty" jsonschema:"Current privacy key, required when changing an existing key"`
	NewKey     string `json:"new_key,omitempty" jsonschema:"New privacy key, required for set_key"`
}

type ManagePrivacyOutput struct {
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

func (h *PrivacyHandlers) ManagePrivacy(ctx context.Context, request *mcp.CallToolRequest, input ManagePrivacyInput) (*mcp.CallToolResult, ManagePrivacyOutput, error) {
	switch input.Action {
	case "status":
		status, err := crm.GetPrivacyStatus(ctx, h.store)
		if err != nil {
			return nil, ManagePrivacyOutput{}, fmt.Errorf("failed to read privacy status: %w", err)
		}
		msg := "No privacy key is configured. Private records are visible to everyone."
		if status.Configured {
			msg = "A privacy key is configured. Private records require it."
		}
		return nil, ManagePrivacyOutput{Configured: status.Configured, Message: msg}, nil

	case "set_key":
		if err := crm.SetPrivacyKey(ctx, h.store, input.CurrentKey, input.NewKey); err != nil {
			return nil, ManagePrivacyOutput{}, err
		}
		return nil, ManagePrivacyOutput{Configured: true, Message: "Privacy key updated."}, nil

	default:
		return nil, ManagePrivacyOutput{}, fmt.Errorf("%w: unknown action %q (expected status or set_key)", crm.ErrValidation, input.Action)
	}
}
