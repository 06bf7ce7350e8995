package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ilearnics/internal/locale"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", "fixtures", name))
	if err != nil {
		t.Fatalf("opening fixture %s: %v", name, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseTable_MoodleFixture(t *testing.T) {
	f := openFixture(t, "moodle_assign_index.html")

	raws, err := ParseTable(f, "https://lms.example.edu")
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	// 4 anchor rows plus the anchorless notice row; the <th> header row
	// carries no cells and is skipped.
	if len(raws) != 5 {
		t.Fatalf("ParseTable() returned %d rows, want 5", len(raws))
	}

	first := raws[0]
	if first.AnchorText != "HW1 線性串列" {
		t.Errorf("AnchorText = %q, want %q", first.AnchorText, "HW1 線性串列")
	}
	if want := "https://lms.example.edu/mod/assign/view.php?id=101"; first.AnchorURL != want {
		t.Errorf("AnchorURL = %q, want %q", first.AnchorURL, want)
	}
	if len(first.Cells) != 4 {
		t.Fatalf("Cells length = %d, want 4", len(first.Cells))
	}
	if want := "繳交期限: 2025-03-01 09:00"; first.Cells[2] != want {
		t.Errorf("Cells[2] = %q, want %q", first.Cells[2], want)
	}

	// The notice row survives table parsing; filtering it is the
	// extractor's job.
	notice := raws[2]
	if notice.AnchorURL != "" || len(notice.Cells) != 1 {
		t.Errorf("notice row = %+v, want anchorless single-cell row", notice)
	}

	rows := NewExtractor(nil).ExtractRows(raws)
	if len(rows) != 3 {
		t.Fatalf("ExtractRows() returned %d assignment rows, want 3", len(rows))
	}
	titles := []string{rows[0].Title, rows[1].Title, rows[2].Title}
	want := []string{"HW1 線性串列", "HW2 Stack & Queue", "HW3 樹狀結構"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("row %d title = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestParseTable_EEClassFixture(t *testing.T) {
	f := openFixture(t, "eeclass_homework.html")

	raws, err := ParseTable(f, "https://lms.example.edu")
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	rows := NewExtractor(nil).ExtractRows(raws)
	if len(rows) != 3 {
		t.Fatalf("ExtractRows() returned %d assignment rows, want 3", len(rows))
	}

	// Relative hrefs resolve against the base; absolute hrefs pass through.
	if want := "https://lms.example.edu/course/homework/content/5566"; rows[0].URL != want {
		t.Errorf("rows[0].URL = %q, want %q", rows[0].URL, want)
	}
	if want := "https://lms.example.edu/course/homework/content/5567"; rows[1].URL != want {
		t.Errorf("rows[1].URL = %q, want %q", rows[1].URL, want)
	}

	if want := "繳交期限：2025/03/15 23:59"; rows[0].DueText != want {
		t.Errorf("rows[0].DueText = %q, want %q", rows[0].DueText, want)
	}
	// The unlabeled row falls back to the joined row text.
	if !strings.Contains(rows[2].DueText, "2025-06-10 18:00") {
		t.Errorf("rows[2].DueText = %q, want it to contain the bare timestamp", rows[2].DueText)
	}
}

func TestParseTable_NoBaseURL(t *testing.T) {
	html := `<table><tr><td><a href="/mod/assign/view.php?id=7">HW</a></td><td>繳交期限: 2025-05-01 10:00</td></tr></table>`

	raws, err := ParseTable(strings.NewReader(html), "")
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("ParseTable() returned %d rows, want 1", len(raws))
	}
	if want := "/mod/assign/view.php?id=7"; raws[0].AnchorURL != want {
		t.Errorf("AnchorURL = %q, want %q", raws[0].AnchorURL, want)
	}
}

func TestParseTable_BadBaseURL(t *testing.T) {
	if _, err := ParseTable(strings.NewReader("<table></table>"), "://bad"); err == nil {
		t.Error("ParseTable() should fail for an unparseable base URL")
	}
}

func TestParseTable_NoTables(t *testing.T) {
	raws, err := ParseTable(strings.NewReader("<html><body><p>nothing</p></body></html>"), "")
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("ParseTable() returned %d rows, want 0", len(raws))
	}
}

func TestParseDetailDue(t *testing.T) {
	labels := locale.DefaultSet()

	tests := []struct {
		name     string
		html     string
		want     string
		wantOK   bool
		contains bool
	}{
		{
			name:   "labeled block with sibling date",
			html: `<div class="info">
  <span class="label">繳交期限</span>
  <span>2025-03-15 23:59</span>
</div>`,
			want:   "繳交期限 2025-03-15 23:59",
			wantOK: true,
		},
		{
			name:   "label and date in one element",
			html:   `<p>截止時間：2025/4/1 12:00</p>`,
			want:   "截止時間：2025/4/1 12:00",
			wantOK: true,
		},
		{
			name:     "no label falls back to page text",
			html:     `<body><h1>HW1</h1><p>2025-06-10 18:00</p></body>`,
			want:     "2025-06-10 18:00",
			wantOK:   true,
			contains: true,
		},
		{
			name:   "empty page",
			html:   `<body></body>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDetailDue(strings.NewReader(tt.html), labels)
			if ok != tt.wantOK {
				t.Fatalf("ParseDetailDue() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if tt.contains {
				if !strings.Contains(got, tt.want) {
					t.Errorf("ParseDetailDue() = %q, want it to contain %q", got, tt.want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseDetailDue() = %q, want %q", got, tt.want)
			}
		})
	}
}
