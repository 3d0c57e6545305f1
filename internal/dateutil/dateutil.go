// Package dateutil parses the event dates of a talk, written either as a
// calendar date in a token format or as "auto" for today.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for date handling.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// ISO is the format used when events.dateFormat is empty.
const ISO = "YYYY-MM-DD"

// presets name the formats a talk config usually wants.
var presets = map[string]string{
	"iso":      ISO,
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens rewrites format tokens to Go layout elements. At each position the
// first matching pair wins, so longer tokens are listed first.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
)

// probe is formatted and parsed back to check that a layout pins down a
// whole date. Its day and month differ so that swapped fields are caught.
var probe = time.Date(2019, time.November, 23, 0, 0, 0, 0, time.UTC)

// Layout turns a preset name or a token format such as "DD/MM/YYYY" into a
// Go time layout. An empty format is ISO. The format must name a year, a
// month and a day.
func Layout(format string) (string, error) {
	if format == "" {
		format = ISO
	}
	if p, ok := presets[strings.ToLower(format)]; ok {
		format = p
	}

	layout := tokens.Replace(format)
	back, err := time.Parse(layout, probe.Format(layout))
	if err != nil || !back.Equal(probe) {
		return "", fmt.Errorf("%w: %q must give a year, a month and a day", ErrInvalidDateFormat, format)
	}
	return layout, nil
}

// ParseDate reads an event date.
//   - "" gives the zero time
//   - "auto" or "today" gives the date of now
//   - anything else is parsed with format (a preset or token format)
//
// Dates are midnight UTC.
func ParseDate(value, format string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return time.Time{}, nil
	case "auto", "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	layout, err := Layout(format)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, value, format)
	}
	return t, nil
}

// FormatDate writes t with a preset or token format.
func FormatDate(t time.Time, format string) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
