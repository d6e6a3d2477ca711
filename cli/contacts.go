// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/store"
)

// splitList parses a comma-separated flag value into a trimmed slice.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// AddContactCommand adds a new contact.
func AddContactCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name, at least two words (required)")
	nickname := fs.String("nickname", "", "Nickname")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Role or title")
	howWeMet := fs.String("how-we-met", "", "How you met")
	tags := fs.String("tags", "", "Comma-separated tags")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	link := fs.String("link", "", "Profile or website link")
	notes := fs.String("notes", "", "Comma-separated notes")
	expertise := fs.String("expertise", "", "Comma-separated expertise areas")
	private := fs.Bool("private", false, "Mark the contact private")
	force := fs.Bool("force", false, "Create even if similar contacts exist")
	key := fs.String("key", "", "Privacy key")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	var info *models.ContactInfo
	if *email != "" || *phone != "" || *link != "" {
		info = &models.ContactInfo{Email: *email, Phone: *phone, Link: *link}
	}

	res, err := crm.AddContact(context.Background(), st, crm.NewContact{
		Name:        *name,
		Nickname:    *nickname,
		Company:     *company,
		Role:        *role,
		HowWeMet:    *howWeMet,
		Tags:        splitList(*tags),
		ContactInfo: info,
		Notes:       splitList(*notes),
		Expertise:   splitList(*expertise),
		Private:     *private,
	}, *force, *key)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	if res.Contact == nil {
		fmt.Println(warning(fmt.Sprintf("Found %d possible duplicate(s):", len(res.Duplicates))))
		for _, dup := range res.Duplicates {
			fmt.Printf("  %s (ID: %s)\n", dup.Name, dup.ID)
		}
		fmt.Println(faintStyle.Render("Re-run with --force to create anyway."))
		return nil
	}

	fmt.Println(checkmark(fmt.Sprintf("Contact created: %s (ID: %s)", res.Contact.Name, res.Contact.ID)))
	if *company != "" {
		fmt.Printf("  Company: %s\n", *company)
	}
	if info != nil && info.Email != "" {
		fmt.Printf("  Email: %s\n", info.Email)
	}

	return nil
}

// ListContactsCommand searches and lists contacts.
func ListContactsCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search across name, company, role, tags, expertise, and notes")
	tag := fs.String("tag", "", "Filter by exact tag")
	company := fs.String("company", "", "Filter by company name")
	expertise := fs.String("expertise", "", "Filter by expertise")
	limit := fs.Int("limit", 50, "Maximum results")
	key := fs.String("key", "", "Privacy key to include private contacts")
	_ = fs.Parse(args)

	contacts, err := crm.SearchContacts(context.Background(), st, crm.SearchOptions{
		Query:     *query,
		Tag:       *tag,
		Company:   *company,
		Expertise: *expertise,
		Limit:     *limit,
		Key:       *key,
	})
	if err != nil {
		return fmt.Errorf("failed to find contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tROLE\tTAGS\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t----\t----\t--")

	for _, contact := range contacts {
		company := contact.Company
		if company == "" {
			company = "-"
		}
		role := contact.Role
		if role == "" {
			role = "-"
		}
		tags := "-"
		if len(contact.Tags) > 0 {
			tags = strings.Join(contact.Tags, ",")
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			contact.Name, company, role, tags, shortID(contact.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d contact(s)\n", len(contacts))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ShowContactCommand prints a contact with its summary and interaction history.
func ShowContactCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("show-contact", flag.ExitOnError)
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID or name is required")
	}

	detail, err := crm.GetContact(context.Background(), st, fs.Args()[0], *key)
	if err != nil {
		return fmt.Errorf("contact not found: %w", err)
	}

	c := detail.Contact
	fmt.Println(headerStyle.Render(c.Name))
	if c.Nickname != "" {
		fmt.Printf("  Nickname:  %s\n", c.Nickname)
	}
	if c.Company != "" {
		fmt.Printf("  Company:   %s\n", c.Company)
	}
	if c.Role != "" {
		fmt.Printf("  Role:      %s\n", c.Role)
	}
	if c.HowWeMet != "" {
		fmt.Printf("  Met:       %s\n", c.HowWeMet)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("  Tags:      %s\n", strings.Join(c.Tags, ", "))
	}
	if len(c.Expertise) > 0 {
		fmt.Printf("  Expertise: %s\n", strings.Join(c.Expertise, ", "))
	}
	if c.ContactInfo != nil {
		if c.ContactInfo.Email != "" {
			fmt.Printf("  Email:     %s\n", c.ContactInfo.Email)
		}
		if c.ContactInfo.Phone != "" {
			fmt.Printf("  Phone:     %s\n", c.ContactInfo.Phone)
		}
		if c.ContactInfo.Link != "" {
			fmt.Printf("  Link:      %s\n", c.ContactInfo.Link)
		}
	}
	for _, note := range c.Notes {
		fmt.Printf("  Note:      %s\n", note)
	}
	fmt.Printf("  ID:        %s\n", c.ID)

	if s := detail.Summary; s != nil {
		fmt.Println()
		fmt.Println(headerStyle.Render("Summary"))
		fmt.Printf("  Interactions: %d\n", s.InteractionCount)
		if s.LastInteraction != "" {
			fmt.Printf("  Last seen:    %s\n", s.LastInteraction)
		}
		if len(s.TopTopics) > 0 {
			fmt.Printf("  Top topics:   %s\n", strings.Join(s.TopTopics, ", "))
		}
		if len(s.Locations) > 0 {
			fmt.Printf("  Locations:    %s\n", strings.Join(s.Locations, ", "))
		}
		if len(s.MentionedNextSteps) > 0 {
			fmt.Printf("  Next steps:   %s\n", strings.Join(s.MentionedNextSteps, "; "))
		}
	}

	if len(detail.Interactions) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("History"))
		for _, in := range detail.Interactions {
			fmt.Printf("  %s  %-8s  %s\n", in.Date, in.Type, in.Summary)
		}
	}

	return nil
}

// UpdateContactCommand updates fields on an existing contact.
func UpdateContactCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name")
	nickname := fs.String("nickname", "", "Nickname")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Role or title")
	howWeMet := fs.String("how-we-met", "", "How you met")
	tags := fs.String("tags", "", "Comma-separated tags (replaces existing)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	link := fs.String("link", "", "Profile or website link")
	notes := fs.String("notes", "", "Comma-separated notes (replaces existing)")
	expertise := fs.String("expertise", "", "Comma-separated expertise (replaces existing)")
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID or name is required")
	}

	var patch crm.ContactPatch
	if *name != "" {
		patch.Name = name
	}
	if *nickname != "" {
		patch.Nickname = nickname
	}
	if *company != "" {
		patch.Company = company
	}
	if *role != "" {
		patch.Role = role
	}
	if *howWeMet != "" {
		patch.HowWeMet = howWeMet
	}
	if *tags != "" {
		list := splitList(*tags)
		patch.Tags = &list
	}
	if *email != "" {
		patch.Email = email
	}
	if *phone != "" {
		patch.Phone = phone
	}
	if *link != "" {
		patch.Link = link
	}
	if *notes != "" {
		list := splitList(*notes)
		patch.Notes = &list
	}
	if *expertise != "" {
		list := splitList(*expertise)
		patch.Expertise = &list
	}

	contact, err := crm.UpdateContact(context.Background(), st, fs.Args()[0], patch, *key)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	fmt.Println(checkmark(fmt.Sprintf("Contact updated: %s (ID: %s)", contact.Name, contact.ID)))
	return nil
}

// DeleteContactCommand deletes a contact, optionally cascading to interactions.
func DeleteContactCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	cascade := fs.Bool("cascade", false, "Delete solo interactions and strip the contact from group interactions")
	key := fs.String("key", "", "Privacy key to access private records")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID or name is required")
	}

	res, err := crm.DeleteContact(context.Background(), st, fs.Args()[0], *cascade, *key)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	if res.Blocked {
		fmt.Println(warning(fmt.Sprintf("%s has %d solo and %d group interaction(s).",
			res.Contact.Name, res.SoloCount, res.GroupCount)))
		fmt.Println(faintStyle.Render("Re-run with --cascade to delete them too."))
		return nil
	}

	fmt.Println(checkmark(fmt.Sprintf("Contact deleted: %s", res.Contact.Name)))
	if res.RemovedInteractions > 0 {
		fmt.Printf("  Removed %d solo interaction(s)\n", res.RemovedInteractions)
	}
	if res.UpdatedInteractions > 0 {
		fmt.Printf("  Updated %d group interaction(s)\n", res.UpdatedInteractions)
	}
	return nil
}
