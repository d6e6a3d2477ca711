// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"log"

	"github.com/harperreed/rolo/handlers"
	"github.com/harperreed/rolo/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(st store.Store) error {
	log.Println("Starting rolo MCP server...")

	contactHandlers := handlers.NewContactHandlers(st)
	interactionHandlers := handlers.NewInteractionHandlers(st)
	privacyHandlers := handlers.NewPrivacyHandlers(st)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rolo",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_contacts",
		Description: "Search contacts by free text, tag, company, or expertise",
	}, contactHandlers.SearchContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a contact's full profile, derived summary, and interaction history",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact, warning about possible duplicates",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update fields on an existing contact",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact, cascading to its interactions when requested",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log an interaction with one or more contacts and update their summaries",
	}, interactionHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_interaction",
		Description: "Edit fields on an existing interaction",
	}, interactionHandlers.EditInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_interaction",
		Description: "Delete an interaction and update affected summaries",
	}, interactionHandlers.DeleteInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recent_interactions",
		Description: "List recent interactions, newest first, with optional contact, date, and type filters",
	}, interactionHandlers.GetRecentInteractions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_mentioned_next_steps",
		Description: "List interactions where someone mentioned a next step",
	}, interactionHandlers.GetMentionedNextSteps)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "manage_privacy",
		Description: "Check privacy key status or set a new privacy key",
	}, privacyHandlers.ManagePrivacy)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
