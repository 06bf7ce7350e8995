// Package cli implements the command-line interface for ilearnics.
//
// The cli package provides the Cobra-based CLI that reads already-fetched
// listing pages (or extracted rows JSON), runs the extraction/normalization/
// synthesis pipeline, and writes the .ics calendar plus a text or JSON report.
// It coordinates the listing, assignment, calendar, filter, and storage
// packages, and exposes a verify subcommand that re-parses generated
// calendars with an independent ICS parser.
package cli
