// Package filter narrows the assignment set before calendar generation.
//
// Criteria cover the flags the build command exposes:
//   - Due-date ranges (from/to, or a --window range expression)
//   - Course labels (substring matching, case-insensitive)
//   - Title keywords (substring matching, case-insensitive)
//   - Skipping already-due assignments
//
// An empty filter passes every record through unchanged.
package filter

import (
	"fmt"
	"strings"
	"time"

	"ilearnics/internal/assignment"
)

// Filter represents assignment filtering criteria
type Filter struct {
	// Due-date range filtering (inclusive)
	DueFrom *time.Time `json:"due_from,omitempty"`
	DueTo   *time.Time `json:"due_to,omitempty"`

	// Course label filtering (case-insensitive substring match)
	Courses []string `json:"courses,omitempty"`

	// Title keyword filtering (case-insensitive substring match)
	Keywords []string `json:"keywords,omitempty"`

	// Drop assignments whose deadline has already passed
	SkipPast bool `json:"skip_past,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all records until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Courses:  []string{},
		Keywords: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all records.
func (f *Filter) IsEmpty() bool {
	return f.DueFrom == nil &&
		f.DueTo == nil &&
		len(f.Courses) == 0 &&
		len(f.Keywords) == 0 &&
		!f.SkipPast
}

// Matches checks if a record passes all active filter criteria.
// An empty filter matches all records.
func (f *Filter) Matches(rec *assignment.Record) bool {
	// Empty filter matches all records
	if f.IsEmpty() {
		return true
	}

	if f.DueFrom != nil && rec.DueAt.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && rec.DueAt.After(*f.DueTo) {
		return false
	}
	if f.SkipPast && rec.IsPast() {
		return false
	}

	// Check course label (case-insensitive substring match)
	if len(f.Courses) > 0 {
		matched := false
		courseLower := strings.ToLower(rec.Course)
		for _, course := range f.Courses {
			if strings.Contains(courseLower, strings.ToLower(course)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check title keywords (case-insensitive substring match)
	if len(f.Keywords) > 0 {
		matched := false
		titleLower := strings.ToLower(rec.Title)
		for _, kw := range f.Keywords {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply applies the filter to a list of records and returns only matching ones.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(records []*assignment.Record) []*assignment.Record {
	if f.IsEmpty() {
		return records
	}

	var filtered []*assignment.Record
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DueFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DueFrom.Format("Jan 2, 2006")))
	}
	if f.DueTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DueTo.Format("Jan 2, 2006")))
	}
	if len(f.Courses) > 0 {
		parts = append(parts, fmt.Sprintf("Courses: %s", strings.Join(f.Courses, ", ")))
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("Keywords: %s", strings.Join(f.Keywords, ", ")))
	}
	if f.SkipPast {
		parts = append(parts, "Skip past due")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		SkipPast: f.SkipPast,
	}

	if f.DueFrom != nil {
		df := *f.DueFrom
		clone.DueFrom = &df
	}
	if f.DueTo != nil {
		dt := *f.DueTo
		clone.DueTo = &dt
	}

	clone.Courses = make([]string, len(f.Courses))
	copy(clone.Courses, f.Courses)
	clone.Keywords = make([]string, len(f.Keywords))
	copy(clone.Keywords, f.Keywords)

	return clone
}
