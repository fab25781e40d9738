// Package dates implements the calendar-date arithmetic the lifecycle
// engine is built on. All dates are compared and stored with
// time-of-day normalized away; strings without a timezone are read in
// the local calendar day, never shifted through UTC.
package dates

import "time"

// Layout is the storage format for calendar dates
const Layout = "2006-01-02"

// LocaleLayout is how dates are rendered inside notification bodies
const LocaleLayout = "January 2, 2006"

// Normalize strips the time-of-day from t, keeping its location
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns the date n days after d; n may be negative
func AddDays(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(0, 0, n)
}

// AddYears returns the date n years after d; n may be negative.
// Feb 29 plus one year lands on Mar 1 of a non-leap year.
func AddYears(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(n, 0, 0)
}

// CalculateExpiration computes the new expiration after paying for
// periodYears. With an existing expiration the result is the later of
// today+period and existing+period: an early renewal extends from the
// current expiration, a lapsed one restarts from today. Pass the zero
// time when there is no existing expiration.
func CalculateExpiration(today, existing time.Time, periodYears int) time.Time {
	fromToday := AddYears(today, periodYears)
	if existing.IsZero() {
		return fromToday
	}
	fromExisting := AddYears(existing, periodYears)
	if fromExisting.After(fromToday) {
		return fromExisting
	}
	return fromToday
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnOrBefore reports whether day a is the same calendar day as b or
// an earlier one
func OnOrBefore(a, b time.Time) bool {
	return !Normalize(a).After(Normalize(b))
}

// Parse reads a stored calendar date in the local day
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// Format renders a calendar date for storage
func Format(d time.Time) string {
	return d.Format(Layout)
}

// FormatLocale renders a calendar date for humans
func FormatLocale(d time.Time) string {
	return d.Format(LocaleLayout)
}
