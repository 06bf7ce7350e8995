package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"ilearnics/internal/assignment"
	"ilearnics/internal/telegram"
)

var (
	botToken   = flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	chatID     = flag.String("chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	reportFile = flag.String("report-file", "", "Path to build report JSON (or read from stdin)")
	attachICS  = flag.String("attach-ics", "", "Path to a calendar file to attach to the digest")
	dryRun     = flag.Bool("dry-run", false, "Print the digest without sending")
	hidePast   = flag.Bool("hide-past", true, "Filter out assignments whose deadline already passed (default: true)")
	daysAhead  = flag.Int("days-ahead", 0, "Only include assignments due within N days (0 = disabled)")
)

// filterByTime applies time-based filtering (past deadlines, days ahead)
func filterByTime(records []*assignment.Record, hidePastDue bool, daysAheadFilter int) []*assignment.Record {
	if !hidePastDue && daysAheadFilter <= 0 {
		return records
	}

	filtered := make([]*assignment.Record, 0)
	for _, rec := range records {
		// Filter past deadlines if enabled
		if hidePastDue && rec.IsPast() {
			continue
		}
		// Filter assignments beyond the days_ahead window if enabled
		if daysAheadFilter > 0 && !rec.IsWithinDays(daysAheadFilter) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// readRecords reads assignment records from the build report file or stdin
func readRecords(filePath string) ([]*assignment.Record, error) {
	var reader io.Reader
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening report file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
			}
		}()
		reader = f
	} else {
		reader = os.Stdin
	}

	var report struct {
		Assignments []*assignment.Record `json:"assignments"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&report); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return report.Assignments, nil
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	// Read assignments from the build report
	records, err := readRecords(*reportFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading report: %v\n", err)
		os.Exit(1)
	}

	records = filterByTime(records, *hidePast, *daysAhead)
	if len(records) == 0 {
		fmt.Println("No assignments to include in the digest")
		os.Exit(0)
	}

	digest := telegram.FormatDigest(records, time.Now())

	// Dry run mode
	if *dryRun {
		fmt.Printf("DRY RUN MODE - Would send digest for %d assignments:\n\n", len(records))
		fmt.Println(digest)
		fmt.Printf("\n(Length: %d characters)\n", len(digest))
		if *attachICS != "" {
			fmt.Printf("Would attach calendar file: %s\n", *attachICS)
		}
		os.Exit(0)
	}

	// Initialize Telegram client
	if *botToken == "" {
		fmt.Fprintf(os.Stderr, "Error: bot token is required (use --bot-token or TELEGRAM_BOT_TOKEN env var)\n")
		os.Exit(1)
	}

	if *chatID == "" {
		fmt.Fprintf(os.Stderr, "Error: chat ID is required (use --chat-id or TELEGRAM_CHAT_ID env var)\n")
		os.Exit(1)
	}

	client, err := telegram.NewClient(*botToken, *chatID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Telegram client: %v\n", err)
		os.Exit(1)
	}

	if err := client.SendMessage(digest); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending digest: %v\n", err)
		os.Exit(1)
	}

	// Attach the calendar file so subscribers can import it directly
	if *attachICS != "" {
		data, err := os.ReadFile(*attachICS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading calendar file: %v\n", err)
			os.Exit(1)
		}

		caption := telegram.FormatDigestSummary(records)
		if err := client.SendDocument(filepath.Base(*attachICS), data, caption); err != nil {
			fmt.Fprintf(os.Stderr, "Error sending calendar file: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Successfully sent digest for %d assignment(s)\n", len(records))
}
