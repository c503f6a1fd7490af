// Package format renders amounts and dates for display. Nothing here
// feeds calculations; the ledger stays in whole integer units.
package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money renders an amount with grouped digits and the currency code,
// e.g. 12500 MMK -> "12,500 MMK".
func Money(amount int64, currency string) string {
	if currency == "" {
		currency = "MMK"
	}
	return printer.Sprintf("%d %s", amount, currency)
}

// ParseMoneyInput turns free-form user input into a positive whole
// amount. Grouping characters and currency noise are stripped; anything
// that does not resolve to a positive integer reports ok=false.
func ParseMoneyInput(value string) (int64, bool) {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if normalized == "" || normalized == "-" {
		return 0, false
	}
	amount, err := strconv.ParseInt(normalized, 10, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// DateLabel renders an ISO date for display; unparsable input passes
// through unchanged.
func DateLabel(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Jan 2, 2006")
}

// MonthLabel renders a month key like "2024-01" as "Jan 2024".
func MonthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("Jan 2006")
}
