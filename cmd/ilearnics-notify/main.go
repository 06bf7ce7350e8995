package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"ilearnics/internal/assignment"
	"ilearnics/internal/notifier"
)

var (
	reportFile   = flag.String("report-file", "", "Path to build report JSON (or read from stdin)")
	dryRun       = flag.Bool("dry-run", false, "Print announcements without posting")
	maxPosts     = flag.Int("max-posts", 10, "Maximum number of announcements to post")
	courseFilter = flag.String("course", "", "Only announce assignments for this course")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	// Read the build report from file or stdin
	var reader io.Reader
	if *reportFile != "" {
		f, err := os.Open(*reportFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening report file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	// Parse JSON
	var report struct {
		NewAssignments []*assignment.Record `json:"new_assignments"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&report); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(report.NewAssignments) == 0 {
		fmt.Println("No new assignments to announce")
		os.Exit(0)
	}

	// Filter by course if specified
	records := report.NewAssignments
	if *courseFilter != "" {
		filtered := make([]*assignment.Record, 0)
		for _, rec := range records {
			if rec.Course == *courseFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	// Limit number of posts
	if len(records) > *maxPosts {
		records = records[:*maxPosts]
	}

	if len(records) == 0 {
		fmt.Println("No assignments match criteria")
		os.Exit(0)
	}

	// Initialize the notifier
	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier()
		fmt.Printf("DRY RUN MODE - Would announce %d assignments:\n\n", len(records))
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		n = client
	}

	// Post announcements
	if err := n.Notify(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting announcements: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d announcements\n", len(records))
	}
}
