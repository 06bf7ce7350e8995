package notifier

import (
	"fmt"

	"ilearnics/internal/assignment"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the announcements that would be posted
func (n *DryRunNotifier) Notify(records []*assignment.Record) error {
	for i, rec := range records {
		post := formatAnnouncement(rec)
		fmt.Printf("--- Post %d/%d ---\n", i+1, len(records))
		fmt.Println(post)
		fmt.Printf("\n(Length: %d characters)\n\n", len(post))
	}
	return nil
}
