package cli

import (
	"fmt"
	"os"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"
)

// newVerifyCmd builds the verify subcommand: a publish-time sanity gate
// that re-parses a generated calendar with an independent ICS parser and
// reports what a subscribing client would see.
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <calendar.ics>",
		Short: "Re-parse a generated calendar and report its events",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening calendar: %w", err)
	}
	defer f.Close()

	cal, err := ics.ParseCalendar(f)
	if err != nil {
		return fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events\n", args[0], len(events))

	badAlarms := 0
	for _, evt := range events {
		uid := propValue(evt, ics.ComponentPropertyUniqueId)
		summary := propValue(evt, ics.ComponentPropertySummary)
		start := propValue(evt, ics.ComponentPropertyDtStart)
		alarms := len(evt.Alarms())

		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  (uid %s, %d alarms)\n",
			start, summary, uid, alarms)

		if alarms != 2 {
			badAlarms++
		}
	}

	if badAlarms > 0 {
		return fmt.Errorf("%d event(s) missing the expected two reminders", badAlarms)
	}
	return nil
}

// propValue reads a property value off an event, unescaping the RFC 5545
// text escapes the serializer applied.
func propValue(evt *ics.VEvent, prop ics.ComponentProperty) string {
	p := evt.GetProperty(prop)
	if p == nil {
		return ""
	}
	v := p.Value
	v = strings.ReplaceAll(v, "\\n", "\n")
	v = strings.ReplaceAll(v, "\\,", ",")
	v = strings.ReplaceAll(v, "\\;", ";")
	v = strings.ReplaceAll(v, "\\\\", "\\")
	return v
}
