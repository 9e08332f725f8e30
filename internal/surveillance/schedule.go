package surveillance

import "time"

// NextDueDate computes the date of the next required analysis.
//
// The raw next date is anchor plus frequencyMonths calendar months, with the
// day-of-month preserved where valid and clamped to the last day of shorter
// months (Jan 31 + 1 month is Feb 28, or Feb 29 in a leap year). When that
// raw date is already behind asOf the schedule fell more than one cycle
// behind; the interval keeps growing by frequencyMonths until the result is
// on or after asOf, so a neglected plan surfaces in the current window
// instead of arbitrarily far in the past. Every candidate is computed from
// the original anchor, keeping the result anchor plus a whole multiple of
// frequencyMonths: stepping from an already-clamped date would drift an
// end-of-month anchor off its day across cycles (Jan 31 via Feb 29 would
// land on Mar 29 instead of Mar 31).
//
// Pure function over normalized dates, no I/O.
func NextDueDate(anchor time.Time, frequencyMonths int, asOf time.Time) time.Time {
	anchor = DateOnly(anchor)
	asOf = DateOnly(asOf)

	next := addMonthsClamped(anchor, frequencyMonths)
	for cycles := 2; next.Before(asOf); cycles++ {
		next = addMonthsClamped(anchor, cycles*frequencyMonths)
	}
	return next
}

// DaysUntil returns the whole number of days from asOf to due. Negative when
// due is in the past.
func DaysUntil(due, asOf time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(asOf)).Hours() / 24)
}

// addMonthsClamped adds calendar months without the day-overflow behavior of
// time.Time.AddDate (which would turn Jan 31 + 1 month into Mar 2/3).
func addMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
