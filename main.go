// ABOUTME: Entry point for the rolo MCP server and CLI
// ABOUTME: Routes to MCP server, CRM commands, or charm sync based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/harperreed/rolo/charm"
	"github.com/harperreed/rolo/cli"
	"github.com/harperreed/rolo/store"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/rolo)")
	useCharm := flag.Bool("charm", false, "Store data in Charm KV instead of local JSON files")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("rolo version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		st, err := openStore(*dataDir, *useCharm)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}

		if err := cli.MCPCommand(st); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		st, err := openStore(*dataDir, *useCharm)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		switch crmCommand {
		// Contact commands
		case "add-contact":
			if err := cli.AddContactCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list-contacts":
			if err := cli.ListContactsCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "show-contact":
			if err := cli.ShowContactCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "update-contact":
			if err := cli.UpdateContactCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete-contact":
			if err := cli.DeleteContactCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		// Interaction commands
		case "log-interaction":
			if err := cli.LogInteractionCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "edit-interaction":
			if err := cli.EditInteractionCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete-interaction":
			if err := cli.DeleteInteractionCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "recent":
			if err := cli.RecentInteractionsCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "next-steps":
			if err := cli.NextStepsCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		// Privacy commands
		case "privacy-status":
			if err := cli.PrivacyStatusCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "set-privacy-key":
			if err := cli.SetPrivacyKeyCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		// Maintenance commands
		case "rebuild-summaries":
			if err := cli.RebuildSummariesCommand(st, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		default:
			fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
			printUsage()
			os.Exit(1)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		syncCommand := commandArgs[0]
		syncArgs := commandArgs[1:]

		switch syncCommand {
		case "link":
			if err := charm.SyncLinkCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "status":
			if err := charm.SyncStatusCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "unlink":
			if err := charm.SyncUnlinkCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "now":
			if err := charm.SyncNowCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "wipe":
			if err := charm.SyncWipeCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "auto":
			if err := charm.SetAutoSyncCommand(syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", syncCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openStore picks the storage backend: local JSON files by default, Charm KV
// with --charm.
func openStore(dataDir string, useCharm bool) (store.Store, error) {
	if useCharm {
		client, err := charm.NewClient(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open charm client: %w", err)
		}
		return charm.NewDocumentStore(client), nil
	}

	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, "rolo")
	}
	return store.NewFileStore(dataDir)
}

func printUsage() {
	fmt.Printf(`rolo v%s - Relationship tracker

USAGE:
  rolo [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --data-dir <path>      Data directory (default: ~/.local/share/rolo)
  --charm                Store data in Charm KV instead of local JSON files

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  crm                    Relationship management commands
  sync                   Charm Cloud sync commands

MCP SERVER:
  rolo mcp

CONTACTS:
  rolo crm add-contact --name "Jane Smith" [--company ...] [--tags a,b]
  rolo crm list-contacts [--query jane] [--tag friend] [--limit 50]
  rolo crm show-contact <id-or-name>
  rolo crm update-contact <id-or-name> [--company ...] [--role ...]
  rolo crm delete-contact <id-or-name> [--cascade]

INTERACTIONS:
  rolo crm log-interaction --contacts jane --summary "Coffee downtown"
  rolo crm recent [--contact jane] [--since 2026-01-01] [--type call]
  rolo crm next-steps [--limit 20]
  rolo crm edit-interaction <id> [--summary ...] [--date ...]
  rolo crm delete-interaction <id>

PRIVACY:
  rolo crm privacy-status
  rolo crm set-privacy-key --new <key> [--current <key>]

MAINTENANCE:
  rolo crm rebuild-summaries

SYNC:
  rolo sync link | status | now | wipe | unlink | auto
`, version)
}
