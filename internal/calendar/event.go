package calendar

import (
	"time"

	"ilearnics/internal/assignment"
)

// SummaryPrefix is the platform tag prepended to every event summary.
const SummaryPrefix = "[iLearning] "

// ReminderMessage is the fixed description carried by every alarm.
const ReminderMessage = "Assignment due soon"

// Alarm is one display reminder attached to an event
type Alarm struct {
	Trigger string // ISO 8601 duration before start, e.g. "-PT24H"
	Message string
}

// Event is one VEVENT-equivalent unit of the output document
type Event struct {
	UID         string
	Summary     string
	Start       time.Time
	End         time.Time
	Description string
	Alarms      []Alarm
}

// FromRecord maps one assignment record to one calendar event. Start and End
// are both the due time: the event marks an instant, not a duration. Two
// display reminders are always attached, 24 hours and 3 hours before start.
func FromRecord(rec *assignment.Record) *Event {
	return &Event{
		UID:         rec.UID,
		Summary:     SummaryPrefix + rec.Title,
		Start:       rec.DueAt,
		End:         rec.DueAt,
		Description: rec.URL,
		Alarms: []Alarm{
			{Trigger: "-PT24H", Message: ReminderMessage},
			{Trigger: "-PT3H", Message: ReminderMessage},
		},
	}
}

// FromRecords maps a batch of records, keeping input order
func FromRecords(records []*assignment.Record) []*Event {
	events := make([]*Event, 0, len(records))
	for _, rec := range records {
		events = append(events, FromRecord(rec))
	}
	return events
}
