package domain

import "time"

// ─── Recurrence Arithmetic ──────────────────────────────────────────────────

// NextOccurrence advances a date by exactly one period.
//
//	DAILY   +1 day
//	WEEKLY  +7 days
//	MONTHLY +1 calendar month, day-of-month clamped to the target month
//	        (Jan 31 → Feb 28, or Feb 29 in a leap year)
//	YEARLY  +1 calendar year, Feb 29 clamped to Feb 28 off leap years
//
// Clamped dates carry forward: advancing always starts from the previous
// occurrence, so a Jan 31 monthly series continues Feb 28, Mar 28 — it
// never snaps back to the 31st.
func NextOccurrence(d time.Time, freq Frequency) (time.Time, error) {
	d = DateOf(d)
	switch freq {
	case Daily:
		return d.AddDate(0, 0, 1), nil
	case Weekly:
		return d.AddDate(0, 0, 7), nil
	case Monthly:
		return addMonthsClamped(d, 1), nil
	case Yearly:
		return addYearsClamped(d, 1), nil
	}
	return time.Time{}, ErrInvalidFrequency
}

// addMonthsClamped adds n months, clamping the day to the target month's
// length instead of letting the overflow spill into the following month
// (time.AddDate would turn Jan 31 + 1 month into Mar 2/3).
func addMonthsClamped(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

func addYearsClamped(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	if last := daysInMonth(y+n, m); day > last {
		day = last
	}
	return NewDate(y+n, m, day)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
