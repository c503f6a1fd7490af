// Package dates handles the calendar-string conventions of the ledger:
// ISO dates (YYYY-MM-DD) and month keys (YYYY-MM). Lexicographic order
// of these strings equals chronological order, and the aggregation code
// leans on that.
package dates

import "time"

const (
	isoDateLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// ToISODate formats a time as a calendar date with no time component.
func ToISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// ToISODateTime formats a timestamp for createdAt/updatedAt/exportedAt.
func ToISODateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// MonthKey returns the YYYY-MM prefix of an ISO date, or "" when the
// input is too short to carry one.
func MonthKey(isoDate string) string {
	if len(isoDate) < len(monthKeyLayout) {
		return ""
	}
	return isoDate[:len(monthKeyLayout)]
}

// MonthKeyOf returns the month key of a point in time.
func MonthKeyOf(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// AddMonths shifts a month key by delta calendar months. An unparsable
// key comes back unchanged.
func AddMonths(monthKey string, delta int) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.AddDate(0, delta, 0).Format(monthKeyLayout)
}

// LastNMonths returns the n month keys ending at from's month, oldest
// first.
func LastNMonths(n int, from time.Time) []string {
	base := MonthKeyOf(from)
	months := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, AddMonths(base, -i))
	}
	return months
}

// ValidISODate reports whether s is a real calendar date in canonical
// YYYY-MM-DD form.
func ValidISODate(s string) bool {
	t, err := time.Parse(isoDateLayout, s)
	return err == nil && t.Format(isoDateLayout) == s
}

// ValidMonthKey reports whether s is a canonical YYYY-MM month key.
func ValidMonthKey(s string) bool {
	t, err := time.Parse(monthKeyLayout, s)
	return err == nil && t.Format(monthKeyLayout) == s
}
