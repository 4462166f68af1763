package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized is returned when a phrase has no date or time in it.
var ErrUnrecognized = errors.New("unrecognized time expression")

var (
	relativePattern = regexp.MustCompile(`^(?:in|next)\s+(\d+|an?)\s+(hours?|hrs?|minutes?|mins?|days?|weeks?)(?:\s+from\s+now)?$`)
	dayPattern      = regexp.MustCompile(`^(?:(?:the\s+)?day\s+after\s+tomorrow|tomorrow|today|tonight|(?:this|next)\s+(?:weekend|monday|tuesday|wednesday|thursday|friday|saturday|sunday)|weekend|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	periodPattern   = regexp.MustCompile(`^(?:in\s+the\s+)?(morning|afternoon|evening|night)\b`)
	clockPattern    = regexp.MustCompile(`^(?:at\s+)?(?:(noon|midnight)|(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.?|p\.m\.?)?)$`)
)

// periodHours are the clock hours the parser assumes for a part of the day.
var periodHours = map[string]int{
	"morning":   8,
	"afternoon": 14,
	"evening":   18,
	"night":     21,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday, "sunday": time.Sunday,
}

// Parser resolves whole English time phrases such as "tomorrow at 8 AM",
// "next friday at noon", "in 3 hours" or "saturday". Dates are preferred in
// the future.
type Parser struct{}

// NewParser builds a phrase parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse resolves phrase relative to base.
func (p *Parser) Parse(phrase string, base time.Time) (time.Time, error) {
	input := strings.ToLower(strings.Join(strings.Fields(phrase), " "))
	input = strings.TrimPrefix(input, "on ")
	if input == "" {
		return time.Time{}, fmt.Errorf("empty input: %w", ErrUnrecognized)
	}
	if t, ok := tryStandardFormats(input, base); ok {
		return t, nil
	}
	if input == "now" || input == "right now" {
		return base, nil
	}
	if t, ok := tryRelative(input, base); ok {
		return t, nil
	}
	return parseComposite(input, base)
}

func tryStandardFormats(input string, base time.Time) (time.Time, bool) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		"2006/01/02 15:04",
		"2006/01/02",
		"01/02/2006",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, strings.ToUpper(input), base.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func tryRelative(input string, base time.Time) (time.Time, bool) {
	m := relativePattern.FindStringSubmatch(input)
	if m == nil {
		return time.Time{}, false
	}
	n := 1
	if m[1] != "a" && m[1] != "an" {
		n, _ = strconv.Atoi(m[1])
	}
	unit := strings.TrimSuffix(m[2], "s")
	switch unit {
	case "hour", "hr":
		return base.Add(time.Duration(n) * time.Hour), true
	case "minute", "min":
		return base.Add(time.Duration(n) * time.Minute), true
	case "day":
		return base.AddDate(0, 0, n), true
	case "week":
		return base.AddDate(0, 0, 7*n), true
	}
	return time.Time{}, false
}

// parseComposite handles [day] [period] [at clock], each part optional but at
// least one present. The whole input must be consumed.
func parseComposite(input string, base time.Time) (time.Time, error) {
	rest := input
	day := ""
	if m := dayPattern.FindString(rest); m != "" {
		day = m
		rest = strings.TrimSpace(rest[len(m):])
	}
	period := ""
	if m := periodPattern.FindStringSubmatch(rest); m != nil {
		period = m[1]
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	hour, minute, hasClock := 0, 0, false
	if rest != "" {
		h, mi, err := parseClock(rest)
		if err != nil {
			return time.Time{}, err
		}
		hour, minute, hasClock = h, mi, true
	}
	if day == "" && period == "" && !hasClock {
		return time.Time{}, fmt.Errorf("%q: %w", input, ErrUnrecognized)
	}

	date, implicitHour := resolveDay(day, base)
	switch {
	case hasClock:
		t := atClock(date, hour, minute)
		if day == "" && t.Before(base) {
			t = t.AddDate(0, 0, 1)
		}
		return t, nil
	case period != "":
		return atClock(date, periodHours[period], 0), nil
	case implicitHour >= 0:
		return atClock(date, implicitHour, 0), nil
	default:
		return date, nil
	}
}

// resolveDay returns the instant for a day word, keeping base's clock, and
// the hour to assume when no time is given (-1 keeps the clock).
func resolveDay(day string, base time.Time) (time.Time, int) {
	switch {
	case day == "" || day == "today":
		return base, -1
	case day == "tonight":
		return base, periodHours["night"]
	case day == "tomorrow":
		return base.AddDate(0, 0, 1), -1
	case strings.HasSuffix(day, "day after tomorrow"):
		return base.AddDate(0, 0, 2), -1
	}

	fields := strings.Fields(day)
	modifier, name := "", fields[len(fields)-1]
	if len(fields) == 2 {
		modifier = fields[0]
	}
	target := time.Saturday
	if name != "weekend" {
		target = weekdays[name]
	}
	ahead := (int(target) - int(base.Weekday()) + 7) % 7
	switch {
	case name == "weekend" && modifier != "next":
		if base.Weekday() == time.Sunday {
			ahead = 0
		}
	case modifier == "this":
	default:
		if ahead == 0 {
			ahead = 7
		}
	}
	return base.AddDate(0, 0, ahead), 12
}

func parseClock(input string) (int, int, error) {
	m := clockPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, 0, fmt.Errorf("%q: %w", input, ErrUnrecognized)
	}
	switch m[1] {
	case "noon":
		return 12, 0, nil
	case "midnight":
		return 0, 0, nil
	}
	hour, _ := strconv.Atoi(m[2])
	minute := 0
	if m[3] != "" {
		minute, _ = strconv.Atoi(m[3])
	}
	suffix := strings.ReplaceAll(m[4], ".", "")
	if suffix == "" && m[3] == "" {
		return 0, 0, fmt.Errorf("bare number %q: %w", input, ErrUnrecognized)
	}
	if suffix != "" && (hour < 1 || hour > 12) {
		return 0, 0, fmt.Errorf("clock out of range %q: %w", input, ErrUnrecognized)
	}
	switch suffix {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 12 {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("clock out of range %q: %w", input, ErrUnrecognized)
	}
	return hour, minute, nil
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
