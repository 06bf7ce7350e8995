package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ilearnics/internal/assignment"
	"ilearnics/internal/calendar"
)

func writeCalendarFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ics")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVerify_RoundTrip(t *testing.T) {
	due := time.Date(2025, 3, 15, 23, 59, 0, 0, time.Local)
	records := []*assignment.Record{
		assignment.NewRecord("HW1, part one; draft", "https://lms.example.edu/mod/assign/view.php?id=101", "資料結構", "2025-03-15 23:59", due),
		assignment.NewRecord("HW2", "https://lms.example.edu/mod/assign/view.php?id=102", "資料結構", "2025-03-22 23:59", due.AddDate(0, 0, 7)),
	}
	ics := calendar.Generate(calendar.FromRecords(records), "iLearning Assignments")
	path := writeCalendarFile(t, ics)

	cmd := newVerifyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("verify failed: %v\noutput:\n%s", err, out.String())
	}

	got := out.String()
	if !strings.Contains(got, "2 events") {
		t.Errorf("output missing event count:\n%s", got)
	}
	// The escaped summary must round-trip back to the original text.
	if !strings.Contains(got, "[iLearning] HW1, part one; draft") {
		t.Errorf("output missing unescaped summary:\n%s", got)
	}
	if !strings.Contains(got, "2 alarms") {
		t.Errorf("output missing alarm count:\n%s", got)
	}
	if !strings.Contains(got, assignment.UIDSuffix) {
		t.Errorf("output missing record UID:\n%s", got)
	}
}

func TestVerify_EmptyCalendar(t *testing.T) {
	path := writeCalendarFile(t, calendar.Generate(nil, ""))

	cmd := newVerifyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("verify failed on empty calendar: %v", err)
	}
	if !strings.Contains(out.String(), "0 events") {
		t.Errorf("output = %q, want it to report 0 events", out.String())
	}
}

func TestVerify_MissingAlarms(t *testing.T) {
	// An event without alarms would mean subscribers get no reminders.
	content := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"BEGIN:VEVENT",
		"UID:abc@ilearning-ics",
		"SUMMARY:[iLearning] HW1",
		"DTSTART:20250315T235900",
		"DTEND:20250315T235900",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	path := writeCalendarFile(t, content)

	cmd := newVerifyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err == nil {
		t.Error("verify should fail when an event lacks its two reminders")
	}
}

func TestVerify_MissingFile(t *testing.T) {
	cmd := newVerifyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.ics")})

	if err := cmd.Execute(); err == nil {
		t.Error("verify should fail for a missing file")
	}
}
