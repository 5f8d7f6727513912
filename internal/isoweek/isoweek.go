// Package isoweek implements ISO-8601 week arithmetic: weeks start on Monday
// and week 1 is the week containing the year's first Thursday.
package isoweek

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned for malformed dates and out-of-range weeks.
var ErrInvalidDate = errors.New("invalid date")

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Week is an ISO year and week number pair.
type Week struct {
	Year int
	Week int
}

func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Validate reports whether w names a week that exists in its ISO year.
func (w Week) Validate() error {
	if w.Year < 1 || w.Year > 9999 {
		return fmt.Errorf("year %d out of range: %w", w.Year, ErrInvalidDate)
	}
	if w.Week < 1 || w.Week > WeeksInYear(w.Year) {
		return fmt.Errorf("week %d out of range for %d: %w", w.Week, w.Year, ErrInvalidDate)
	}
	return nil
}

// Before reports whether w comes strictly before o.
func (w Week) Before(o Week) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// Of returns the ISO week containing t. t is evaluated in UTC.
func Of(t time.Time) Week {
	y, wk := t.UTC().ISOWeek()
	return Week{Year: y, Week: wk}
}

// WeeksInYear returns 52 or 53. December 28 always falls in the last ISO
// week of its year.
func WeeksInYear(year int) int {
	_, wk := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

// Start returns Monday 00:00:00 UTC of w.
func Start(w Week) (time.Time, error) {
	if err := w.Validate(); err != nil {
		return time.Time{}, err
	}
	// January 4 is always in week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)
	return monday.AddDate(0, 0, 7*(w.Week-1)), nil
}

// Range returns the inclusive bounds of w: Monday 00:00:00 through the last
// nanosecond of the following Sunday.
func Range(w Week) (start, end time.Time, err error) {
	start, err = Start(w)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(week - time.Nanosecond), nil
}

// Prev returns the week before w, crossing year boundaries (including into
// 53-week years).
func Prev(w Week) (Week, error) {
	return step(w, -7)
}

// Next returns the week after w.
func Next(w Week) (Week, error) {
	return step(w, 7)
}

func step(w Week, days int) (Week, error) {
	start, err := Start(w)
	if err != nil {
		return Week{}, err
	}
	next := Of(start.AddDate(0, 0, days))
	if err := next.Validate(); err != nil {
		return Week{}, err
	}
	return next, nil
}

// Parse reads the "2026-W05" form produced by Week.String.
func Parse(s string) (Week, error) {
	ys, ws, ok := strings.Cut(strings.TrimSpace(s), "-W")
	if !ok {
		return Week{}, fmt.Errorf("parse week %q: %w", s, ErrInvalidDate)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Week{}, fmt.Errorf("parse week %q: %w", s, ErrInvalidDate)
	}
	wk, err := strconv.Atoi(ws)
	if err != nil {
		return Week{}, fmt.Errorf("parse week %q: %w", s, ErrInvalidDate)
	}
	w := Week{Year: y, Week: wk}
	if err := w.Validate(); err != nil {
		return Week{}, err
	}
	return w, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC. Dates that do
// not exist (2025-02-30) are rejected rather than normalized.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	return t, nil
}

// FromDate builds midnight UTC for year, month and day.
func FromDate(year int, month time.Month, dom int) (time.Time, error) {
	t := time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != dom {
		return time.Time{}, fmt.Errorf("date %04d-%02d-%02d: %w", year, int(month), dom, ErrInvalidDate)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range: %w", year, ErrInvalidDate)
	}
	return t, nil
}

// FormatRange renders the Monday..Sunday span starting at start, e.g.
// "Jan 5-11" or "Jan 26 - Feb 1".
func FormatRange(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d", start.Format("Jan"), start.Day(), end.Day())
	}
	return fmt.Sprintf("%s %d - %s %d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day())
}
