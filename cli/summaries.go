// ABOUTME: Summary maintenance CLI commands
// ABOUTME: Recomputes every contact summary from the interaction log
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/harperreed/rolo/crm"
	"github.com/harperreed/rolo/store"
)

// RebuildSummariesCommand recomputes all derived summaries. Useful after
// hand-editing the underlying collections or restoring from a backup.
func RebuildSummariesCommand(st store.Store, args []string) error {
	fs := flag.NewFlagSet("rebuild-summaries", flag.ExitOnError)
	_ = fs.Parse(args)

	count, err := crm.RebuildAllSummaries(context.Background(), st)
	if err != nil {
		return fmt.Errorf("failed to rebuild summaries: %w", err)
	}

	fmt.Println(checkmark(fmt.Sprintf("Rebuilt %d summar(ies)", count)))
	return nil
}
