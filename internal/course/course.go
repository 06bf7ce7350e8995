// Package course provides the LMS course registry for assignment feeds
package course

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Course identifies one LMS course whose assignment listing feeds the
// calendar. ID is the course identifier as it appears in listing URLs;
// Name is an optional human label attached to generated records.
type Course struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Label returns the display label for the course: its name when known,
// otherwise the raw id.
func (c Course) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ParseList parses the comma-separated course list the surrounding system
// passes through configuration, e.g. "58430:資料結構,58431:演算法設計" or
// bare ids "58430,58431". Empty entries are skipped.
func ParseList(spec string) ([]Course, error) {
	var courses []Course
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, name, _ := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("course entry %q has an empty id", entry)
		}
		courses = append(courses, Course{ID: id, Name: strings.TrimSpace(name)})
	}
	return courses, nil
}

// TitleFromListing recovers a course name from an already-fetched listing
// page for ids configured without one. Moodle puts "課程名: 作業" in the
// <title>; ee-class uses "課程名 - 作業列表 | platform". Returns "" when
// the page carries no usable title.
func TitleFromListing(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	if i := strings.Index(title, "|"); i >= 0 {
		title = title[:i]
	}
	if i := strings.IndexAny(title, ":："); i >= 0 {
		title = title[:i]
	}
	if i := strings.Index(title, " - "); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
