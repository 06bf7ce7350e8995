package calendar

import (
	"fmt"
	"strings"
	"time"
)

// ProdID identifies this generator in every emitted document.
const ProdID = "-//iLearning ICS//ilearnics//EN"

// Generate assembles an iCalendar document from a sequence of events: one
// header, each event's fields in fixed order, one footer. Events are emitted
// in input order with no reordering, dedup, or sorting, so a
// duplicated input produces two VEVENTs sharing a UID (calendar clients
// merge those on import).
//
// An empty input still yields a well-formed empty calendar so that a feed
// with no live assignments clears stale client events.
func Generate(events []*Event, name string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:" + ProdID + "\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))
	}

	for _, evt := range events {
		writeEvent(&ics, evt)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEvent emits one VEVENT block. No DTSTAMP is written: the document
// must be byte-identical across runs for the same input, so re-publishing
// an unchanged feed stays a no-op for subscribed clients.
func writeEvent(ics *strings.Builder, evt *Event) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", evt.UID))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Summary)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.End)))
	if evt.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))
	}

	for _, alarm := range evt.Alarms {
		ics.WriteString("BEGIN:VALARM\r\n")
		ics.WriteString("ACTION:DISPLAY\r\n")
		ics.WriteString(fmt.Sprintf("TRIGGER:%s\r\n", alarm.Trigger))
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(alarm.Message)))
		ics.WriteString("END:VALARM\r\n")
	}

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as a floating iCalendar datetime string.
// No zone designator: the due text's implied local time is taken as-is.
func formatICSTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
