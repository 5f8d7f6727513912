package isoweek

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOfKnownValues(t *testing.T) {
	tests := []struct {
		in   time.Time
		want Week
	}{
		{date(2026, time.January, 1), Week{2026, 1}},
		{date(2025, time.December, 29), Week{2026, 1}},
		{date(2025, time.December, 28), Week{2025, 52}},
		{date(2026, time.January, 27), Week{2026, 5}},
		{date(2021, time.January, 1), Week{2020, 53}},
		{date(2021, time.January, 3), Week{2020, 53}},
		{date(2021, time.January, 4), Week{2021, 1}},
		{date(2024, time.December, 30), Week{2025, 1}},
		{date(2027, time.January, 1), Week{2026, 53}},
		{time.Date(2026, time.January, 27, 10, 30, 0, 0, time.UTC), Week{2026, 5}},
	}
	for _, tt := range tests {
		got := Of(tt.in)
		if got != tt.want {
			t.Errorf("Of(%s) = %v, want %v", tt.in.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestOfUsesUTC(t *testing.T) {
	// Monday 00:30 in +02:00 is still Sunday in UTC.
	loc := time.FixedZone("EET", 2*60*60)
	in := time.Date(2026, time.January, 26, 0, 30, 0, 0, loc)
	if got := Of(in); got != (Week{2026, 4}) {
		t.Fatalf("Of = %v, want 2026-W04", got)
	}
}

func TestWeeksInYear(t *testing.T) {
	tests := map[int]int{
		2015: 53,
		2020: 53,
		2021: 52,
		2024: 52,
		2025: 52,
		2026: 53,
	}
	for year, want := range tests {
		if got := WeeksInYear(year); got != want {
			t.Errorf("WeeksInYear(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		w    Week
		want time.Time
	}{
		{Week{2026, 1}, date(2025, time.December, 29)},
		{Week{2026, 5}, date(2026, time.January, 26)},
		{Week{2020, 53}, date(2020, time.December, 28)},
		{Week{2021, 1}, date(2021, time.January, 4)},
		{Week{2025, 1}, date(2024, time.December, 30)},
	}
	for _, tt := range tests {
		got, err := Start(tt.w)
		if err != nil {
			t.Fatalf("Start(%v): %v", tt.w, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Start(%v) = %v, want %v", tt.w, got, tt.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("Start(%v) is a %v", tt.w, got.Weekday())
		}
	}
}

func TestRange(t *testing.T) {
	start, end, err := Range(Week{2026, 5})
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(date(2026, time.January, 26)) {
		t.Fatalf("start = %v", start)
	}
	wantEnd := time.Date(2026, time.February, 1, 23, 59, 59, 999999999, time.UTC)
	if !end.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", end, wantEnd)
	}
}

func TestRoundTrip(t *testing.T) {
	for d := date(1999, time.December, 1); d.Before(date(2031, time.February, 1)); d = d.AddDate(0, 0, 1) {
		for _, clock := range []time.Duration{0, 13*time.Hour + 7*time.Minute, 24*time.Hour - time.Nanosecond} {
			instant := d.Add(clock)
			w := Of(instant)
			start, err := Start(w)
			if err != nil {
				t.Fatalf("Start(%v): %v", w, err)
			}
			if instant.Before(start) || !instant.Before(start.AddDate(0, 0, 7)) {
				t.Fatalf("%v not within week %v starting %v", instant, w, start)
			}
			if Of(start) != w {
				t.Fatalf("Of(Start(%v)) = %v", w, Of(start))
			}
		}
	}
}

func TestNextPrev(t *testing.T) {
	tests := []struct {
		from Week
		next Week
	}{
		{Week{2020, 52}, Week{2020, 53}},
		{Week{2020, 53}, Week{2021, 1}},
		{Week{2024, 52}, Week{2025, 1}},
		{Week{2026, 5}, Week{2026, 6}},
		{Week{2026, 53}, Week{2027, 1}},
	}
	for _, tt := range tests {
		got, err := Next(tt.from)
		if err != nil {
			t.Fatalf("Next(%v): %v", tt.from, err)
		}
		if got != tt.next {
			t.Errorf("Next(%v) = %v, want %v", tt.from, got, tt.next)
		}
		back, err := Prev(tt.next)
		if err != nil {
			t.Fatalf("Prev(%v): %v", tt.next, err)
		}
		if back != tt.from {
			t.Errorf("Prev(%v) = %v, want %v", tt.next, back, tt.from)
		}
	}
}

func TestInvalidWeeks(t *testing.T) {
	bad := []Week{
		{2026, 0},
		{2026, 54},
		{2025, 53},
		{0, 10},
		{10000, 1},
	}
	for _, w := range bad {
		if _, err := Start(w); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Start(%v) err = %v, want ErrInvalidDate", w, err)
		}
		if _, _, err := Range(w); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Range(%v) err = %v, want ErrInvalidDate", w, err)
		}
		if _, err := Next(w); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Next(%v) err = %v, want ErrInvalidDate", w, err)
		}
	}
}

func TestPrevAtLowerBound(t *testing.T) {
	if _, err := Prev(Week{1, 1}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate stepping before year 1, got %v", err)
	}
}

func TestStringParse(t *testing.T) {
	w := Week{2026, 5}
	if w.String() != "2026-W05" {
		t.Fatalf("String = %q", w.String())
	}
	got, err := Parse("2026-W05")
	if err != nil {
		t.Fatal(err)
	}
	if got != w {
		t.Fatalf("Parse = %v", got)
	}

	for _, s := range []string{"", "2026", "2026-05", "abcd-W01", "2026-Wxx", "2025-W53"} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-27")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(date(2026, time.January, 27)) {
		t.Fatalf("ParseDate = %v", got)
	}
	for _, s := range []string{"2025-02-30", "2026-13-01", "27/01/2026", ""} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) err = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestFromDate(t *testing.T) {
	if _, err := FromDate(2024, time.February, 29); err != nil {
		t.Fatalf("leap day rejected: %v", err)
	}
	if _, err := FromDate(2025, time.February, 29); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := FromDate(2025, time.April, 31); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestBefore(t *testing.T) {
	if !(Week{2025, 52}).Before(Week{2026, 1}) {
		t.Fatal("2025-W52 should be before 2026-W01")
	}
	if (Week{2026, 5}).Before(Week{2026, 5}) {
		t.Fatal("week is not before itself")
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(date(2026, time.January, 26)); got != "Jan 26 - Feb 1" {
		t.Errorf("FormatRange = %q", got)
	}
	if got := FormatRange(date(2026, time.January, 5)); got != "Jan 5-11" {
		t.Errorf("FormatRange = %q", got)
	}
}
