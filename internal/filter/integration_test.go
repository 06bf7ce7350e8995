package filter_test

import (
	"testing"
	"time"

	"ilearnics/internal/assignment"
	"ilearnics/internal/filter"
)

// TestIntegration exercises the window grammar end to end against a batch
// of normalized records, the way the build command's --window flag does.
func TestIntegration(t *testing.T) {
	// Pin the record year to whatever year the window grammar infers for
	// March, so the test holds in any month it runs.
	marchFrom, _, err := filter.ParseDateRange("March")
	if err != nil {
		t.Fatalf("ParseDateRange failed: %v", err)
	}
	year := marchFrom.Year()

	records := []*assignment.Record{
		assignment.NewRecord("HW1 線性串列", "https://lms.example.edu/mod/assign/view.php?id=1",
			"資料結構", "", time.Date(year, time.March, 1, 9, 0, 0, 0, time.Local)),
		assignment.NewRecord("HW2 Stack & Queue", "https://lms.example.edu/mod/assign/view.php?id=2",
			"資料結構", "", time.Date(year, time.March, 8, 23, 59, 0, 0, time.Local)),
		assignment.NewRecord("HW1 分治法報告", "https://lms.example.edu/course/homework/content/5566",
			"演算法設計", "", time.Date(year, time.March, 15, 23, 59, 0, 0, time.Local)),
		assignment.NewRecord("期末專題提案", "https://lms.example.edu/course/homework/content/5568",
			"演算法設計", "", time.Date(year, time.June, 10, 18, 0, 0, 0, time.Local)),
	}

	t.Run("window keeps only in-range deadlines", func(t *testing.T) {
		from, to, err := filter.ParseDateRange("March 1-10")
		if err != nil {
			t.Fatalf("ParseDateRange failed: %v", err)
		}

		f := &filter.Filter{DueFrom: from, DueTo: to}
		got := f.Apply(records)

		if len(got) != 2 {
			t.Fatalf("got %d records in window, want 2", len(got))
		}
		for _, rec := range got {
			if rec.DueAt.Before(*from) || rec.DueAt.After(*to) {
				t.Errorf("record %q due %v outside window [%v, %v]", rec.Title, rec.DueAt, from, to)
			}
		}
	})

	t.Run("window combined with course", func(t *testing.T) {
		from, to, err := filter.ParseDateRange("March")
		if err != nil {
			t.Fatalf("ParseDateRange failed: %v", err)
		}

		f := &filter.Filter{DueFrom: from, DueTo: to, Courses: []string{"演算法設計"}}
		got := f.Apply(records)

		if len(got) != 1 {
			t.Fatalf("got %d records, want 1", len(got))
		}
		if got[0].Title != "HW1 分治法報告" {
			t.Errorf("kept %q, want the March 演算法設計 assignment", got[0].Title)
		}
	})

	t.Run("keyword narrows across courses", func(t *testing.T) {
		f := &filter.Filter{Keywords: []string{"HW1"}}
		got := f.Apply(records)

		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
	})
}
