package compare

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`^\s*(<=|>=|<|>|==?)?\s*(\d*)\s*([a-zA-Z]*)\s*$`)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var dateUnits = map[string]time.Duration{
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       day,
	"day":     day,
	"days":    day,
	"w":       week,
	"week":    week,
	"weeks":   week,
}

// ParseDate compiles an age expression such as "< 2 days" into a predicate over timestamps.
//
// The age of a timestamp is counted in whole units elapsed since it (rounded down, like
// find's -mtime), then compared with the amount: "< 2 days" accepts entries whose age is
// 0 or 1 day, "> 2 days" accepts 3 days or more and "2 days" (equality is the default
// operator) accepts ages from 2 days up to, but excluding, 3 days.
// The default unit is days.
func ParseDate(expression string, now time.Time) (func(t time.Time) bool, error) {
	matches := datePattern.FindStringSubmatch(expression)
	if matches == nil {
		return nil, fmt.Errorf("couldn't comprehend date expression \"%s\"", expression)
	}
	op := normalizeOperator(matches[1])
	amount := 0
	if matches[2] != "" {
		var err error
		amount, err = strconv.Atoi(matches[2])
		if err != nil {
			return nil, fmt.Errorf("couldn't comprehend amount \"%s\": %+v", matches[2], err)
		}
	}
	unit := day
	if matches[3] != "" {
		var ok bool
		unit, ok = dateUnits[strings.ToLower(matches[3])]
		if !ok {
			return nil, fmt.Errorf("unknown time unit \"%s\" (expected minutes, hours, days or weeks)", matches[3])
		}
	}
	return func(t time.Time) bool {
		return op.holds(compareInt64(age(now.Sub(t), unit), int64(amount)))
	}, nil
}

// MustParseDate is ParseDate that panics on invalid expressions
func MustParseDate(expression string, now time.Time) func(time.Time) bool {
	f, err := ParseDate(expression, now)
	if err != nil {
		panic(err)
	}
	return f
}

// age is the floor of elapsed/unit, so timestamps in the future get negative ages
func age(elapsed, unit time.Duration) int64 {
	a := int64(elapsed / unit)
	if elapsed < 0 && elapsed%unit != 0 {
		a--
	}
	return a
}
