package cli

import (
	"sort"
	"strings"

	"ilearnics/internal/assignment"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDue    SortOrder = "due"
	SortByTitle  SortOrder = "title"
	SortByCourse SortOrder = "course"
)

// sortRecords sorts a slice of records based on the specified sort order
func sortRecords(records []*assignment.Record, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDue:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDue(records[i], records[j])
		})
	case SortByTitle:
		sort.SliceStable(records, func(i, j int) bool {
			ti := strings.ToLower(records[i].Title)
			tj := strings.ToLower(records[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by due date
			return compareByDue(records[i], records[j])
		})
	case SortByCourse:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Course != records[j].Course {
				return records[i].Course < records[j].Course
			}
			// If courses are equal, sort by due date
			return compareByDue(records[i], records[j])
		})
	}
}

// compareByDue compares two records by due time, breaking ties by title
func compareByDue(i, j *assignment.Record) bool {
	if !i.DueAt.Equal(j.DueAt) {
		return i.DueAt.Before(j.DueAt)
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
