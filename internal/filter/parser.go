package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthNames = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`

var (
	reSameMonth  = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	reCrossMonth = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(` + monthNames + `)\s+(\d{1,2})$`)
	reWholeMonth = regexp.MustCompile(`(?i)^(` + monthNames + `)$`)
)

// ParseDateRange parses a due-window expression into start and end times.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// The parser automatically infers the year:
//   - If the month is in the past, assumes next year
//   - Otherwise, uses current year
//   - For cross-month ranges, if end month < start month, end is in next year
//
// Returns (dueFrom, dueTo, error). Start time is at 00:00:00 local,
// end time at 23:59:59, matching how assignment deadlines are quoted.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	// Format 1: "Mar 1-15" or "March 1-15"
	if matches := reSameMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		day1, err := parseDay(matches[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(matches[3])
		if err != nil {
			return nil, nil, err
		}

		year := getYearForMonth(month)
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.Local)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.Local)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// Format 2: "Mar 1 - Apr 15" or "March 1 - April 15"
	if matches := reCrossMonth.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		day1, err := parseDay(matches[2])
		if err != nil {
			return nil, nil, err
		}
		month2 := parseMonth(matches[3])
		day2, err := parseDay(matches[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := getYearForMonth(month1)
		// If month2 < month1, the range wraps into the next year
		year2 := year1
		if month2 < month1 {
			year2++
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.Local)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.Local)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// Format 3: Single month "March" or "Mar" (entire month)
	if matches := reWholeMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := getYearForMonth(month)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		// Last day of month
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.Local)

		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

// parseMonth converts a month name to time.Month. The regexes only ever
// hand it names from monthNames, so the lookup cannot miss.
func parseMonth(name string) time.Month {
	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[strings.ToLower(strings.TrimSpace(name))]
}

// getYearForMonth returns the appropriate year for a given month
// If the month has already passed this year, returns next year
func getYearForMonth(month time.Month) int {
	now := time.Now()
	year := now.Year()

	// If month is in the past, use next year
	if month < now.Month() {
		year++
	}

	return year
}
