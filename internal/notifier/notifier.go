package notifier

import (
	"ilearnics/internal/assignment"
)

// Notifier defines the interface for announcing new assignments
type Notifier interface {
	// Notify posts announcements for the given assignments
	Notify(records []*assignment.Record) error
}
