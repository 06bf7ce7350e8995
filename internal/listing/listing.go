package listing

import (
	"regexp"
	"strings"

	"ilearnics/internal/locale"
)

// DefaultAnchorPattern matches assignment-detail links on both Moodle
// (/mod/assign/view.php?id=N) and ee-class (/course/homework/...) themes.
var DefaultAnchorPattern = regexp.MustCompile(`(mod/assign|/homework)`)

// RawRow is one table row as handed over by the page-fetching glue: the
// row's first anchor (title text, absolute link) plus its cell texts, in
// column order.
type RawRow struct {
	AnchorText string   `json:"anchor_text"`
	AnchorURL  string   `json:"anchor_url"`
	Cells      []string `json:"cells"`
}

// Row is a row recognized as an assignment, carrying the raw text believed
// to encode its deadline.
type Row struct {
	Title   string
	URL     string
	DueText string
}

// Extractor decides which raw rows represent assignments and picks the
// cell most likely to carry the due date.
type Extractor struct {
	// AnchorPattern filters rows to those linking to an assignment
	// detail page.
	AnchorPattern *regexp.Regexp
	// Labels is the due-date label vocabulary used for the cell scan.
	Labels *locale.Set
}

// NewExtractor creates an extractor with the default anchor pattern.
// A nil label set selects the built-in vocabulary.
func NewExtractor(labels *locale.Set) *Extractor {
	if labels == nil {
		labels = locale.DefaultSet()
	}
	return &Extractor{
		AnchorPattern: DefaultAnchorPattern,
		Labels:        labels,
	}
}

// ExtractRow decides whether raw represents an assignment row. Rows
// without an anchor matching the assignment-detail pattern (or with an
// empty title) are filtered, not errored.
//
// The due-text candidate is the last cell containing a due label; when no
// cell matches, the concatenated row text is used as the search space and
// the date normalizer gets to decide.
func (e *Extractor) ExtractRow(raw RawRow) (Row, bool) {
	title := strings.TrimSpace(raw.AnchorText)
	url := strings.TrimSpace(raw.AnchorURL)
	if title == "" || url == "" || !e.AnchorPattern.MatchString(url) {
		return Row{}, false
	}

	dueText := ""
	for i := len(raw.Cells) - 1; i >= 0; i-- {
		if e.Labels.MatchesDue(raw.Cells[i]) {
			dueText = strings.TrimSpace(raw.Cells[i])
			break
		}
	}
	if dueText == "" {
		dueText = strings.TrimSpace(strings.Join(raw.Cells, " "))
	}

	return Row{Title: title, URL: url, DueText: dueText}, true
}

// ExtractRows applies ExtractRow to a batch, keeping input order.
func (e *Extractor) ExtractRows(raws []RawRow) []Row {
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		if row, ok := e.ExtractRow(raw); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
