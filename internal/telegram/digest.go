package telegram

import (
	"fmt"
	"html"
	"sort"
	"time"

	"ilearnics/internal/assignment"
)

// FormatDigest formats upcoming assignments as an HTML digest message,
// grouped by course and ordered by deadline within each group.
func FormatDigest(records []*assignment.Record, now time.Time) string {
	if len(records) == 0 {
		return "No upcoming assignment deadlines. 🎉"
	}

	// Header
	msg := "📬 <b>Upcoming assignment deadlines</b>\n\n"
	msg += fmt.Sprintf("🗓 %d assignment%s due\n\n", len(records), pluralize(len(records)))

	// Group records by course
	byCourse := make(map[string][]*assignment.Record)
	for _, rec := range records {
		byCourse[rec.Course] = append(byCourse[rec.Course], rec)
	}

	// Sort course labels alphabetically; the unlabeled group sorts first
	courses := make([]string, 0, len(byCourse))
	for course := range byCourse {
		courses = append(courses, course)
	}
	sort.Strings(courses)

	// Format each course section
	for _, course := range courses {
		courseRecords := byCourse[course]
		sort.Slice(courseRecords, func(i, j int) bool {
			return courseRecords[i].DueAt.Before(courseRecords[j].DueAt)
		})

		label := course
		if label == "" {
			label = "Other"
		}
		msg += fmt.Sprintf("📚 <b>%s</b> (%d assignment%s)\n",
			html.EscapeString(label), len(courseRecords), pluralize(len(courseRecords)))

		for _, rec := range courseRecords {
			msg += fmt.Sprintf("  • <a href=\"%s\">%s</a> — %s\n",
				html.EscapeString(rec.URL), html.EscapeString(rec.Title), dueIn(rec.DueAt, now))
		}
		msg += "\n"
	}

	msg += "⏰ <i>Reminders fire 24h and 3h before each deadline</i>"

	return msg
}

// FormatDigestSummary creates a short plain summary line for a digest
func FormatDigestSummary(records []*assignment.Record) string {
	if len(records) == 0 {
		return "📬 Assignment digest: nothing due"
	}

	byCourse := make(map[string]int)
	for _, rec := range records {
		label := rec.Course
		if label == "" {
			label = "Other"
		}
		byCourse[label]++
	}

	courseList := make([]string, 0, len(byCourse))
	for course, count := range byCourse {
		courseList = append(courseList, fmt.Sprintf("%s (%d)", course, count))
	}
	sort.Strings(courseList)

	msg := fmt.Sprintf("📬 Assignment digest: %d due", len(records))
	for i, entry := range courseList {
		if i == 0 {
			msg += " in " + entry
		} else {
			msg += ", " + entry
		}
	}
	return msg
}

// dueIn renders a deadline relative to now: "due in 2 days (03-08 23:59)",
// "due in 5 hours", or "overdue" once the deadline has passed.
func dueIn(due, now time.Time) string {
	stamp := due.Format("01-02 15:04")
	remaining := due.Sub(now)

	switch {
	case remaining < 0:
		return fmt.Sprintf("overdue (%s)", stamp)
	case remaining < time.Hour:
		return fmt.Sprintf("due in %d min (%s)", int(remaining.Minutes()), stamp)
	case remaining < 48*time.Hour:
		return fmt.Sprintf("due in %d hours (%s)", int(remaining.Hours()), stamp)
	default:
		return fmt.Sprintf("due in %d days (%s)", int(remaining.Hours()/24), stamp)
	}
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
