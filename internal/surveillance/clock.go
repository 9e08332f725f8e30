package surveillance

import "time"

// Clock supplies the current calendar date. Injected so schedule computation
// and urgency classification stay deterministic under test.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return DateOnly(time.Now())
}

// SystemClock returns a Clock backed by the wall clock, truncated to the day.
func SystemClock() Clock {
	return systemClock{}
}

// DateOnly strips the time-of-day component, keeping year/month/day in UTC.
// All schedule arithmetic operates on these normalized dates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return DateOnly(t), nil
}
