package assignment

import (
	"sort"
	"time"
)

// Snapshot represents the set of known assignments at a point in time
type Snapshot struct {
	Records   map[string]*Record `json:"records"`    // keyed by Record.UID
	ChangeLog []*Change          `json:"change_log"` // Recent changes
	UpdatedAt string             `json:"updated_at"` // RFC3339 timestamp
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Records:   make(map[string]*Record),
		ChangeLog: make([]*Change, 0),
	}
}

// CreateSnapshot creates a snapshot from a list of records
func CreateSnapshot(records []*Record, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, rec := range records {
		snap.Records[rec.UID] = rec
	}
	return snap
}

// Change represents a change detected in an assignment between runs
type Change struct {
	UID        string    `json:"uid"`
	ChangeType string    `json:"change_type"` // "new" or "due"
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	DetectedAt time.Time `json:"detected_at"`
}

// DiffResult contains the results of comparing current records against a snapshot
type DiffResult struct {
	NewRecords []*Record // assignments not present in the previous snapshot
	Changes    []*Change // new assignments plus moved deadlines / renamed titles
}

// Diff compares current records against a previous snapshot. New assignments
// are detected by UID; surviving assignments are checked for moved deadlines
// and title edits. A renamed title changes the UID too, so the old entry
// reads as removed and the renamed one as new; that is the UID contract.
func Diff(previous *Snapshot, current []*Record) *DiffResult {
	result := &DiffResult{
		NewRecords: make([]*Record, 0),
		Changes:    make([]*Change, 0),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	for _, rec := range current {
		prev, exists := previous.Records[rec.UID]
		if !exists {
			result.NewRecords = append(result.NewRecords, rec)
			result.Changes = append(result.Changes, &Change{
				UID:        rec.UID,
				ChangeType: "new",
				NewValue:   rec.Title,
				DetectedAt: time.Now().UTC(),
			})
			continue
		}
		// Carry the original sighting forward across runs.
		if !prev.FirstSeen.IsZero() {
			rec.FirstSeen = prev.FirstSeen
		}
		result.Changes = append(result.Changes, detectChanges(prev, rec)...)
	}

	// Sort new records for consistent output
	sort.Slice(result.NewRecords, func(i, j int) bool {
		if !result.NewRecords[i].DueAt.Equal(result.NewRecords[j].DueAt) {
			return result.NewRecords[i].DueAt.Before(result.NewRecords[j].DueAt)
		}
		return result.NewRecords[i].Title < result.NewRecords[j].Title
	})

	return result
}

// detectChanges compares two records sharing a UID and reports field-level changes
func detectChanges(previous, current *Record) []*Change {
	var changes []*Change

	// Detect a moved deadline
	if !previous.DueAt.Equal(current.DueAt) {
		changes = append(changes, &Change{
			UID:        current.UID,
			ChangeType: "due",
			OldValue:   previous.DueAt.Format("2006-01-02 15:04"),
			NewValue:   current.DueAt.Format("2006-01-02 15:04"),
			DetectedAt: time.Now().UTC(),
		})
	}

	return changes
}
