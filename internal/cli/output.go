package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"ilearnics/internal/assignment"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Report contains the outcome of one build run. Its JSON form is the
// interchange format the notify and digest sidecars read.
type Report struct {
	RunID           string               `json:"run_id"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Source          string               `json:"source"`
	OutputPath      string               `json:"output_path"`
	RowsScanned     int                  `json:"rows_scanned"`
	RecordsRejected int                  `json:"records_rejected"`
	EventCount      int                  `json:"event_count"`
	Assignments     []*assignment.Record `json:"assignments"`
	NewAssignments  []*assignment.Record `json:"new_assignments"`
	Changes         []*assignment.Change `json:"changes,omitempty"`
}

// WriteReport writes the report in the specified format
func WriteReport(w io.Writer, report *Report, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as JSON
func writeJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable text
func writeText(w io.Writer, report *Report, verbose bool) error {
	if report.EventCount == 0 {
		fmt.Fprintf(w, "No assignments with parsable deadlines. Wrote empty calendar to %s\n", report.OutputPath)
		return nil
	}

	newUIDs := make(map[string]bool, len(report.NewAssignments))
	for _, rec := range report.NewAssignments {
		newUIDs[rec.UID] = true
	}

	for _, rec := range report.Assignments {
		marker := " "
		if newUIDs[rec.UID] {
			marker = "NEW"
		}
		line := fmt.Sprintf("%-3s %s  %s", marker, rec.DueAt.Format("2006-01-02 15:04"), rec.Title)
		if rec.Course != "" {
			line += fmt.Sprintf("  (%s)", rec.Course)
		}
		fmt.Fprintln(w, line)
		if verbose {
			fmt.Fprintf(w, "     UID: %s\n", rec.UID)
			fmt.Fprintf(w, "     URL: %s\n", rec.URL)
		}
	}

	for _, ch := range report.Changes {
		if ch.ChangeType == "due" {
			fmt.Fprintf(w, "\nDeadline moved: %s -> %s (%s)\n", ch.OldValue, ch.NewValue, ch.UID)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events (%d rows scanned, %d rejected) -> %s\n",
		report.EventCount, report.RowsScanned, report.RecordsRejected, report.OutputPath)

	return nil
}
