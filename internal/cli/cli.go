package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ilearnics/internal/assignment"
	"ilearnics/internal/calendar"
	"ilearnics/internal/course"
	"ilearnics/internal/filter"
	"ilearnics/internal/listing"
	"ilearnics/internal/locale"
	"ilearnics/internal/logger"
	"ilearnics/internal/storage"
)

const (
	ExitSuccess        = 0
	ExitError          = 1
	ExitNewAssignments = 2
)

const (
	InputFormatHTML = "html"
	InputFormatRows = "rows"
)

var (
	flagInputs       []string
	flagInputFormat  string
	flagBaseURL      string
	flagCourses      []string
	flagLabels       string
	flagSource       string
	flagOutput       string
	flagCalendarName string
	flagTimezone     string
	flagWindow       string
	flagDueFrom      string
	flagDueTo        string
	flagKeywords     []string
	flagSkipPast     bool
	flagSortOrder    string
	flagSnapshot     bool
	flagDataDir      string
	flagFormat       string
	flagVerbose      bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ilearnics",
		Short: "Turn LMS assignment listings into a subscribable calendar",
		Long: `Reads already-fetched LMS assignment listing pages (or extracted rows),
normalizes due-date text into exact timestamps, and writes an .ics calendar
with 24h and 3h reminders per assignment. Re-running over the same listings
produces identical event UIDs, so calendar clients update instead of
duplicating.`,
		RunE: runBuild,
	}

	// Define flags
	cmd.Flags().StringArrayVar(&flagInputs, "input", nil, "Listing file to read, '-' for stdin (repeatable)")
	cmd.Flags().StringVar(&flagInputFormat, "input-format", InputFormatHTML, "Input format: html (listing page) or rows (extracted rows JSON)")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", envOr("ILEARNING_BASE_URL", ""), "Base URL for resolving relative assignment links")
	cmd.Flags().StringArrayVar(&flagCourses, "course", nil, "Course as id or id:name, one per --input (or env: COURSE_IDS)")
	cmd.Flags().StringVar(&flagLabels, "labels", "", "YAML file with extra due-date label patterns")
	cmd.Flags().StringVar(&flagSource, "source", "ilearning", "Feed source name, used for the output filename and snapshot")
	cmd.Flags().StringVar(&flagOutput, "output", envOr("ICS_OUTPUT", ""), "Output .ics path (default public/<source>.ics)")
	cmd.Flags().StringVar(&flagCalendarName, "calendar-name", "", "X-WR-CALNAME header for the generated calendar")
	cmd.Flags().StringVar(&flagTimezone, "timezone", envOr("TIMEZONE", "Asia/Taipei"), "Timezone for report timestamps (emitted events stay floating)")
	cmd.Flags().StringVar(&flagWindow, "window", "", "Due window like 'Mar 1-15', 'March 1 - April 15', or 'March'")
	cmd.Flags().StringVar(&flagDueFrom, "due-from", "", "Keep assignments due on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagDueTo, "due-to", "", "Keep assignments due on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&flagKeywords, "keyword", nil, "Keep assignments whose title contains this keyword (repeatable)")
	cmd.Flags().BoolVar(&flagSkipPast, "skip-past", false, "Drop assignments whose deadline has passed")
	cmd.Flags().StringVar(&flagSortOrder, "sort", "due", "Sort order: due, title, or course")
	cmd.Flags().BoolVar(&flagSnapshot, "snapshot", false, "Diff against the previous run and report new assignments")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/ilearnics", "Data directory for snapshots")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newVerifyCmd())

	return cmd
}

// runBuild is the main command logic: rows in, calendar text out.
func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if flagInputFormat != InputFormatHTML && flagInputFormat != InputFormatRows {
		return fmt.Errorf("invalid input format: %s (must be 'html' or 'rows')", flagInputFormat)
	}
	if len(flagInputs) == 0 {
		flagInputs = []string{"-"}
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	} else {
		logger.SetDefault(logger.New(logger.LevelInfo, os.Stderr))
	}

	runID := uuid.NewString()

	labels, err := loadLabels(flagLabels)
	if err != nil {
		return err
	}

	courses, err := resolveCourses()
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(flagTimezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", flagTimezone, err)
	}

	// Gather rows across all inputs, in input order.
	extractor := listing.NewExtractor(labels)
	var records []*assignment.Record
	rowsScanned := 0
	rowsExtracted := 0

	for i, input := range flagInputs {
		raws, courseLabel, err := readInput(input, i, courses, labels)
		if err != nil {
			return err
		}
		rowsScanned += len(raws)

		rows := extractor.ExtractRows(raws)
		rowsExtracted += len(rows)

		batch := assignment.FromRows(rows, labels, courseLabel)
		records = append(records, batch...)

		logger.Debug("input processed", logger.Fields{
			"run_id": runID, "input": input, "course": courseLabel,
			"rows": len(raws), "extracted": len(rows), "records": len(batch),
		})
	}

	rejected := rowsExtracted - len(records)
	logger.IncrCounterBy("pipeline.rows_scanned", int64(rowsScanned))
	logger.IncrCounterBy("pipeline.records_rejected", int64(rejected))

	// Narrow by the requested window before generating events.
	f, err := buildFilter()
	if err != nil {
		return err
	}
	records = f.Apply(records)

	sortRecords(records, SortOrder(flagSortOrder))

	// Snapshot diff for new-assignment detection.
	var newRecords []*assignment.Record
	var changes []*assignment.Change
	if flagSnapshot {
		store, err := storage.New(flagDataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		previous, err := store.LoadSnapshot(flagSource)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		diff := assignment.Diff(previous, records)
		newRecords = diff.NewRecords
		changes = diff.Changes

		if err := store.CreateSnapshotFromRecords(records, flagSource); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	// Synthesize and serialize.
	events := calendar.FromRecords(records)
	ics := calendar.Generate(events, flagCalendarName)
	logger.IncrCounterBy("pipeline.events_emitted", int64(len(events)))

	outputPath := flagOutput
	if outputPath == "" {
		outputPath = filepath.Join("public", flagSource+".ics")
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	logger.RecordTiming("pipeline.build", time.Since(start))
	logger.Info("calendar written", logger.Fields{
		"run_id": runID, "source": flagSource, "path": outputPath,
		"rows_scanned": rowsScanned, "records_rejected": rejected,
		"events_emitted": len(events), "new_assignments": len(newRecords),
	})

	result := &Report{
		RunID:           runID,
		GeneratedAt:     time.Now().In(loc),
		Source:          flagSource,
		OutputPath:      outputPath,
		RowsScanned:     rowsScanned,
		RecordsRejected: rejected,
		EventCount:      len(events),
		Assignments:     records,
		NewAssignments:  newRecords,
		Changes:         changes,
	}

	if err := WriteReport(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Exit code 2 signals the CI scheduler that announcements are pending.
	if len(newRecords) > 0 {
		os.Exit(ExitNewAssignments)
	}

	return nil
}

// readInput reads one --input into raw rows and resolves its course label.
func readInput(input string, index int, courses []course.Course, labels *locale.Set) ([]listing.RawRow, string, error) {
	var r io.Reader
	if input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, "", fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	courseLabel := ""
	if index < len(courses) {
		courseLabel = courses[index].Label()
	}

	switch flagInputFormat {
	case InputFormatRows:
		var raws []listing.RawRow
		if err := json.NewDecoder(r).Decode(&raws); err != nil {
			return nil, "", fmt.Errorf("parsing rows JSON from %s: %w", input, err)
		}
		return raws, courseLabel, nil
	default:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, "", fmt.Errorf("reading input: %w", err)
		}
		raws, err := listing.ParseTable(strings.NewReader(string(data)), flagBaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("parsing listing %s: %w", input, err)
		}
		// A course id configured without a name gets the page title.
		if index < len(courses) && courses[index].Name == "" {
			if title := course.TitleFromListing(strings.NewReader(string(data))); title != "" {
				courseLabel = title
			}
		} else if courseLabel == "" {
			courseLabel = course.TitleFromListing(strings.NewReader(string(data)))
		}
		return raws, courseLabel, nil
	}
}

// resolveCourses merges the --course flags with the COURSE_IDS environment
// variable the original deployment used.
func resolveCourses() ([]course.Course, error) {
	spec := strings.Join(flagCourses, ",")
	if spec == "" {
		spec = os.Getenv("COURSE_IDS")
	}
	return course.ParseList(spec)
}

// loadLabels selects the label vocabulary: the built-in set, or the
// built-in set replaced by a YAML file.
func loadLabels(path string) (*locale.Set, error) {
	if path == "" {
		return locale.DefaultSet(), nil
	}
	labels, err := locale.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}
	return labels, nil
}

// buildFilter assembles the record filter from flags
func buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Keywords = flagKeywords
	f.SkipPast = flagSkipPast

	if flagWindow != "" {
		from, to, err := filter.ParseDateRange(flagWindow)
		if err != nil {
			return nil, fmt.Errorf("parsing window: %w", err)
		}
		f.DueFrom = from
		f.DueTo = to
	}
	if flagDueFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", flagDueFrom, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing due-from: %w", err)
		}
		f.DueFrom = &t
	}
	if flagDueTo != "" {
		t, err := time.ParseInLocation("2006-01-02", flagDueTo, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing due-to: %w", err)
		}
		end := t.Add(24*time.Hour - time.Second)
		f.DueTo = &end
	}

	return f, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
