package assignment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dueLayouts is the ladder of explicit formats the LMS themes are known to
// render. Go's numeric layout verbs accept unpadded digits, so "2006-1-2
// 15:04" also covers "2025-3-8 9:00".
var dueLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-1-2T15:04:05",
	"2006-1-2T15:04",
	"2006年1月2日 15:04",
	"2006年1月2日",
	"2006-1-2",
	"2006/1/2",
	"Monday, 2 January 2006, 3:04 PM",
	"2 January 2006, 3:04 PM",
	"January 2, 2006, 3:04 PM",
}

// cjkWeekday matches parenthesized weekday tokens the themes wedge between
// date and time, e.g. （六）, (週五), (Sun).
var cjkWeekday = regexp.MustCompile(`[（(]\s*(?:週|星期)?(?:[一二三四五六日天]|Mon|Tue|Wed|Thu|Fri|Sat|Sun)[a-z]*\s*[）)]`)

// dateToken matches the first date-ish token inside arbitrary row text, for
// the whole-row fallback where the due cell could not be identified.
var dateToken = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})(?:[ T](\d{1,2}):(\d{2}))?`)

// ParseDue converts label-stripped due text into an absolute timestamp.
// Returns ok=false if no date can be recovered; callers drop the record.
//
// The implied local wall-clock time is taken as-is; no timezone conversion
// happens here. Seconds are normalized to :00 (minute precision).
func ParseDue(text string) (time.Time, bool) {
	text = normalizeDueText(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return truncateToMinute(t), true
		}
	}

	// Free-form fallback for formats outside the ladder.
	if t, err := dateparse.ParseLocal(text); err == nil && t.Year() > 1 {
		return truncateToMinute(t), true
	}

	// Whole-row fallback text carries the date somewhere inside other
	// cell noise; scan for the first date-ish token.
	if m := dateToken.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		hour, minute := 0, 0
		if m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
			minute, _ = strconv.Atoi(m[5])
		}
		if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), true
	}

	return time.Time{}, false
}

// normalizeDueText irons out the CJK typography the parser ladder cannot
// absorb: full-width colons and spaces, parenthesized weekday tokens.
func normalizeDueText(text string) string {
	text = strings.ReplaceAll(text, "：", ":")
	text = strings.ReplaceAll(text, "　", " ")
	text = cjkWeekday.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

func truncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
