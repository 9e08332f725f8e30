package surveillance

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestNextDueDate_SimpleAdvance tests plain calendar-month addition
func TestNextDueDate_SimpleAdvance(t *testing.T) {
	testCases := []struct {
		name     string
		anchor   time.Time
		months   int
		asOf     time.Time
		expected time.Time
	}{
		{
			name:     "Three months from mid-month",
			anchor:   date(2024, time.January, 12),
			months:   3,
			asOf:     date(2024, time.January, 15),
			expected: date(2024, time.April, 12),
		},
		{
			name:     "One month preserves day",
			anchor:   date(2024, time.March, 15),
			months:   1,
			asOf:     date(2024, time.March, 15),
			expected: date(2024, time.April, 15),
		},
		{
			name:     "Twelve months crosses year",
			anchor:   date(2024, time.June, 5),
			months:   12,
			asOf:     date(2024, time.June, 5),
			expected: date(2025, time.June, 5),
		},
		{
			name:     "Six months from first of month",
			anchor:   date(2024, time.February, 1),
			months:   6,
			asOf:     date(2024, time.February, 1),
			expected: date(2024, time.August, 1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.anchor, tc.months, tc.asOf)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

// TestNextDueDate_EndOfMonthClamping tests that overflowing days clamp to the
// last day of the target month instead of rolling into the next one
func TestNextDueDate_EndOfMonthClamping(t *testing.T) {
	testCases := []struct {
		name     string
		anchor   time.Time
		months   int
		asOf     time.Time
		expected time.Time
	}{
		{
			name:     "Jan 31 plus one month in leap year clamps to Feb 29",
			anchor:   date(2024, time.January, 31),
			months:   1,
			asOf:     date(2024, time.January, 31),
			expected: date(2024, time.February, 29),
		},
		{
			name:     "Jan 31 plus one month in non-leap year clamps to Feb 28",
			anchor:   date(2023, time.January, 31),
			months:   1,
			asOf:     date(2023, time.January, 31),
			expected: date(2023, time.February, 28),
		},
		{
			name:     "Mar 31 plus one month clamps to Apr 30",
			anchor:   date(2024, time.March, 31),
			months:   1,
			asOf:     date(2024, time.March, 31),
			expected: date(2024, time.April, 30),
		},
		{
			name:     "Oct 31 plus four months clamps to Feb 28",
			anchor:   date(2022, time.October, 31),
			months:   4,
			asOf:     date(2022, time.October, 31),
			expected: date(2023, time.February, 28),
		},
		{
			name:     "Day 30 survives into a 31-day month",
			anchor:   date(2024, time.April, 30),
			months:   1,
			asOf:     date(2024, time.April, 30),
			expected: date(2024, time.May, 30),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.anchor, tc.months, tc.asOf)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

// TestNextDueDate_CatchUp tests that a schedule that fell several cycles
// behind advances to the first cycle on or after asOf
func TestNextDueDate_CatchUp(t *testing.T) {
	// Anchor 14 months in the past with a 3-month frequency. The raw next
	// date (anchor + 3 months) is long gone; the schedule must advance in
	// 3-month steps until it reaches the current window.
	anchor := date(2023, time.January, 10)
	asOf := date(2024, time.March, 1)

	got := NextDueDate(anchor, 3, asOf)
	expected := date(2024, time.April, 10)

	if !got.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

// TestNextDueDate_CatchUpFromMonthEnd tests that catching up measures every
// cycle from the original anchor, so an end-of-month anchor keeps landing on
// month ends instead of drifting to the clamped day of an earlier cycle
func TestNextDueDate_CatchUpFromMonthEnd(t *testing.T) {
	testCases := []struct {
		name     string
		anchor   time.Time
		months   int
		asOf     time.Time
		expected time.Time
	}{
		{
			name:     "Jan 31 monthly catches up to Apr 30, not Apr 29 via Feb 29",
			anchor:   date(2024, time.January, 31),
			months:   1,
			asOf:     date(2024, time.April, 1),
			expected: date(2024, time.April, 30),
		},
		{
			name:     "Jan 31 monthly passing through February keeps Mar 31",
			anchor:   date(2024, time.January, 31),
			months:   1,
			asOf:     date(2024, time.March, 1),
			expected: date(2024, time.March, 31),
		},
		{
			name:     "Aug 31 quarterly catches up through Feb to May 31",
			anchor:   date(2023, time.August, 31),
			months:   3,
			asOf:     date(2024, time.March, 1),
			expected: date(2024, time.May, 31),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.anchor, tc.months, tc.asOf)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

// TestNextDueDate_NeverBeforeAsOf tests the catch-up invariant over a spread
// of anchors and frequencies
func TestNextDueDate_NeverBeforeAsOf(t *testing.T) {
	asOf := date(2024, time.September, 1)
	frequencies := []int{1, 2, 3, 6, 12}

	for _, freq := range frequencies {
		anchor := date(2021, time.May, 31)
		for i := 0; i < 36; i++ {
			got := NextDueDate(anchor, freq, asOf)
			if got.Before(asOf) {
				t.Errorf("Frequency %d, anchor %s: due date %s is before asOf %s",
					freq, anchor.Format("2006-01-02"), got.Format("2006-01-02"), asOf.Format("2006-01-02"))
			}
			anchor = anchor.AddDate(0, 0, 23)
		}
	}
}

// TestNextDueDate_ExactlyAsOf tests that a due date landing on asOf is kept,
// not advanced another cycle
func TestNextDueDate_ExactlyAsOf(t *testing.T) {
	anchor := date(2024, time.January, 10)
	asOf := date(2024, time.April, 10)

	got := NextDueDate(anchor, 3, asOf)

	if !got.Equal(asOf) {
		t.Errorf("Expected due date to stay at %s, got %s", asOf.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

// TestDaysUntil tests signed whole-day distance between dates
func TestDaysUntil(t *testing.T) {
	testCases := []struct {
		name     string
		due      time.Time
		asOf     time.Time
		expected int
	}{
		{"Same day", date(2024, time.April, 15), date(2024, time.April, 15), 0},
		{"Three days ahead", date(2024, time.April, 18), date(2024, time.April, 15), 3},
		{"Five days past", date(2024, time.April, 10), date(2024, time.April, 15), -5},
		{"Across month boundary", date(2024, time.May, 2), date(2024, time.April, 28), 4},
		{"Across DST-sized offsets", date(2024, time.March, 31).Add(5 * time.Hour), date(2024, time.March, 30), 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysUntil(tc.due, tc.asOf)
			if got != tc.expected {
				t.Errorf("Expected %d days, got %d", tc.expected, got)
			}
		})
	}
}

// TestParseDate tests the wire date format
func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-31")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !got.Equal(date(2024, time.January, 31)) {
		t.Errorf("Expected 2024-01-31, got %s", got.Format("2006-01-02"))
	}

	invalid := []string{"", "31/01/2024", "2024-1-5", "2024-02-30", "not-a-date"}
	for _, s := range invalid {
		if _, err := ParseDate(s); err != ErrInvalidDate {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", s, err)
		}
	}
}
