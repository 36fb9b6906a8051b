package schedule

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Calendar decides which days count toward schedule progress. The zero
// value excludes weekends only; municipal holidays can be layered on as an
// exclusion set keyed by YYYY-MM-DD.
type Calendar struct {
	Holidays map[string]bool
}

// Midnight truncates t to date-only precision in its location. Time of
// day never means anything to the scheduler.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsBusinessDay reports whether t counts toward schedule progress.
func (c Calendar) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if c.Holidays != nil && c.Holidays[t.Format(DateLayout)] {
		return false
	}

	return true
}

// NextBusinessDay returns the first business day at or after t, at
// midnight.
func (c Calendar) NextBusinessDay(t time.Time) time.Time {
	d := Midnight(t)
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}

	return d
}

// AddBusinessDays steps forward from t counting business days only.
// n == 0 lands on the first business day at or after t.
func (c Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	d := c.NextBusinessDay(t)
	for i := 0; i < n; i++ {
		d = c.NextBusinessDay(d.AddDate(0, 0, 1))
	}

	return d
}
