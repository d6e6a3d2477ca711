// ABOUTME: Interaction CLI commands
// ABOUTME: Log, edit, delete, and list interactions from the terminal
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/store"
)

// LogInteractionCommand logs a new interaction.
func LogInteractionCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	contacts := fs.String("contacts", "", "Comma-separated contact IDs or names (required)")
	date := fs.String("date", "", "Date in YYYY-MM-DD form (default today)")
	kind := fs.String("type", "", "Interaction type: catch-up, meeting, call, message, event, or other")
	summary := fs.String("summary", "", "What happened (required)")
	topics := fs.String("topics", "", "Comma-separated topics")
	nextSteps := fs.String("next-steps", "", "Anything the other party said they would do")
	location := fs.String("location", "", "Where it happened")
	private := fs.Bool("private", false, "Mark the interaction private")
	force := fs.Bool("force", false, "Log even if a similar interaction exists")
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if *contacts == "" {
		return fmt.Errorf("--contacts is required")
	}
	if *summary == "" {
		return fmt.Errorf("--summary is required")
	}

	res, err := crm.LogInteraction(context.Background(), st, crm.NewInteraction{
		ContactNames:       splitList(*contacts),
		Date:               *date,
		Type:               *kind,
		Summary:            *summary,
		Topics:             splitList(*topics),
		MentionedNextSteps: *nextSteps,
		Location:           *location,
		Private:            *private,
	}, *force, *key)
	if err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}

	if res.Interaction == nil {
		fmt.Println(warning(fmt.Sprintf("Found %d similar interaction(s):", len(res.Duplicates))))
		for _, dup := range res.Duplicates {
			fmt.Printf("  %s  %s (ID: %s)\n", dup.Date, dup.Summary, shortID(dup.ID))
		}
		fmt.Println(faintStyle.Render("Re-run with --force to log anyway."))
		return nil
	}

	in := res.Interaction
	fmt.Println(checkmark(fmt.Sprintf("Interaction logged: %s %s (ID: %s)", in.Date, in.Type, in.ID)))
	return nil
}

// EditInteractionCommand updates fields on an existing interaction.
func EditInteractionCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("edit-interaction", flag.ExitOnError)
	contacts := fs.String("contacts", "", "Comma-separated contact IDs (replaces existing)")
	date := fs.String("date", "", "Date in YYYY-MM-DD form")
	kind := fs.String("type", "", "Interaction type")
	summary := fs.String("summary", "", "Updated summary")
	topics := fs.String("topics", "", "Comma-separated topics (replaces existing)")
	nextSteps := fs.String("next-steps", "", "Updated next steps")
	location := fs.String("location", "", "Updated location")
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("interaction ID is required")
	}

	var patch crm.InteractionPatch
	if *contacts != "" {
		list := splitList(*contacts)
		patch.ContactIDs = &list
	}
	if *date != "" {
		patch.Date = date
	}
	if *kind != "" {
		patch.Type = kind
	}
	if *summary != "" {
		patch.Summary = summary
	}
	if *topics != "" {
		list := splitList(*topics)
		patch.Topics = &list
	}
	if *nextSteps != "" {
		patch.MentionedNextSteps = nextSteps
	}
	if *location != "" {
		patch.Location = location
	}

	in, err := crm.EditInteraction(context.Background(), st, fs.Args()[0], patch, *key)
	if err != nil {
		return fmt.Errorf("failed to edit interaction: %w", err)
	}

	fmt.Println(checkmark(fmt.Sprintf("Interaction updated: %s (ID: %s)", in.Date, in.ID)))
	return nil
}

// DeleteInteractionCommand removes an interaction.
func DeleteInteractionCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-interaction", flag.ExitOnError)
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("interaction ID is required")
	}

	in, err := crm.DeleteInteraction(context.Background(), st, fs.Args()[0], *key)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}

	fmt.Println(checkmark(fmt.Sprintf("Interaction deleted: %s %s", in.Date, shortID(in.ID))))
	return nil
}

// RecentInteractionsCommand lists recent interactions, newest first.
func RecentInteractionsCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("recent", flag.ExitOnError)
	contact := fs.String("contact", "", "Limit to a single contact by ID or name")
	since := fs.String("since", "", "Only interactions on or after this YYYY-MM-DD date")
	kind := fs.String("type", "", "Filter by interaction type")
	limit := fs.Int("limit", 20, "Maximum results")
	key := fs.String("key", "", "Privacy key to include private records")
	_ = fs.Parse(args)

	interactions, err := crm.ListRecentInteractions(context.Background(), st, crm.RecentOptions{
		Contact: *contact,
		Since:   *since,
		Type:    *kind,
		Limit:   *limit,
		Key:     *key,
	})
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}

	if len(interactions) == 0 {
		fmt.Println("No interactions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tTYPE\tSUMMARY\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t--")
	for _, in := range interactions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", in.Date, in.Type, truncate(in.Summary, 60), shortID(in.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d interaction(s)\n", len(interactions))
	return nil
}

// NextStepsCommand lists interactions that mention a next step.
func NextStepsCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("next-steps", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum results")
	key := fs.String("key", "", "Privacy key to include private records")
	_ = fs.Parse(args)

	interactions, err := crm.ListMentionedNextSteps(context.Background(), st, *limit, *key)
	if err != nil {
		return fmt.Errorf("failed to list next steps: %w", err)
	}

	if len(interactions) == 0 {
		fmt.Println("No mentioned next steps found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tNEXT STEPS\tID")
	_, _ = fmt.Fprintln(w, "----\t----------\t--")
	for _, in := range interactions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", in.Date, truncate(in.MentionedNextSteps, 70), shortID(in.ID))
	}
	_ = w.Flush()

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
