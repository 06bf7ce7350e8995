package assignment

import (
	"encoding/base64"
	"strings"
	"time"

	"ilearnics/internal/listing"
	"ilearnics/internal/locale"
)

// UIDSuffix is the domain tag appended to every generated UID.
const UIDSuffix = "@ilearning-ics"

// Record represents one assignment with a normalized due time
type Record struct {
	UID       string    `json:"uid"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Course    string    `json:"course,omitempty"`
	DueText   string    `json:"due_text"`
	DueAt     time.Time `json:"due_at"`
	FirstSeen time.Time `json:"first_seen"`
}

// GenerateUID creates a deterministic UID for an assignment from its URL and
// title: base64 of the concatenation with padding stripped, plus the domain
// tag. The same (url, title) pair always yields the same UID, which is what
// makes re-subscription idempotent rather than duplicating events. It is not
// collision-resistant and is not meant to be.
func GenerateUID(url, title string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(url + title))
	return strings.TrimRight(enc, "=") + UIDSuffix
}

// NewRecord creates a Record with UID and FirstSeen populated
func NewRecord(title, url, course, dueText string, dueAt time.Time) *Record {
	return &Record{
		UID:       GenerateUID(url, title),
		Title:     title,
		URL:       url,
		Course:    course,
		DueText:   dueText,
		DueAt:     dueAt,
		FirstSeen: time.Now().UTC(),
	}
}

// FromRow normalizes an extracted listing row into a Record. The due text is
// stripped of its locale labels and parsed; rows whose due text does not
// parse are rejected with ok=false. Rejection is a filter, not an error:
// upstream tables legitimately contain header and notice rows whose "dates"
// never parse.
func FromRow(row listing.Row, labels *locale.Set, course string) (*Record, bool) {
	if labels == nil {
		labels = locale.DefaultSet()
	}
	dueAt, ok := ParseDue(labels.Strip(row.DueText))
	if !ok {
		return nil, false
	}
	return NewRecord(row.Title, row.URL, course, row.DueText, dueAt), true
}

// FromRows maps a batch of rows through FromRow, keeping input order and
// dropping rejected rows.
func FromRows(rows []listing.Row, labels *locale.Set, course string) []*Record {
	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		if rec, ok := FromRow(row, labels, course); ok {
			records = append(records, rec)
		}
	}
	return records
}

// IsPast reports whether the record's due time has passed.
func (r *Record) IsPast() bool {
	return r.DueAt.Before(time.Now())
}

// IsWithinDays reports whether the record is due within N days from now.
// Returns true if days <= 0 (feature disabled).
func (r *Record) IsWithinDays(days int) bool {
	if days <= 0 {
		return true // Feature disabled
	}
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)
	return r.DueAt.After(now) && r.DueAt.Before(cutoff)
}
