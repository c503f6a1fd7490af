// Package derive turns the ledger into render-ready aggregates. Every
// function here is pure and total over well-formed input, tolerates
// dangling category references, and uses exact integer addition only;
// these numbers feed over-budget comparisons, so no float accumulation
// is acceptable.
package derive

import (
	"sort"

	"thonex/internal/dates"
	"thonex/internal/ledger"
)

// Range is an inclusive date window; an empty bound is open.
type Range struct {
	Start string
	End   string
}

// Contains reports whether an ISO date falls inside the range.
func (r Range) Contains(isoDate string) bool {
	if isoDate == "" {
		return false
	}
	if r.Start != "" && isoDate < r.Start {
		return false
	}
	if r.End != "" && isoDate > r.End {
		return false
	}
	return true
}

// Totals is the income/expense pair for a set of transactions.
type Totals struct {
	Income  int64
	Expense int64
}

// Net returns income minus expense.
func (t Totals) Net() int64 {
	return t.Income - t.Expense
}

// TotalsByType sums amounts per transaction type. Transactions with an
// unrecognized type contribute to neither side.
func TotalsByType(txns []ledger.Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		switch txn.Type {
		case ledger.TypeIncome:
			t.Income += txn.Amount
		case ledger.TypeExpense:
			t.Expense += txn.Amount
		}
	}
	return t
}

// TotalsForMonth returns the month-to-date totals for one month key.
func TotalsForMonth(txns []ledger.Transaction, monthKey string) Totals {
	var t Totals
	for _, txn := range txns {
		if dates.MonthKey(txn.Date) != monthKey {
			continue
		}
		switch txn.Type {
		case ledger.TypeIncome:
			t.Income += txn.Amount
		case ledger.TypeExpense:
			t.Expense += txn.Amount
		}
	}
	return t
}

// CategoryTotal is one category's expense total within a range.
type CategoryTotal struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Total int64
}

// CategoryTotals sums expense amounts per category within the range, in
// category display order. Categories whose total is not positive are
// omitted; amounts are constrained positive, so in practice that drops
// exactly the categories with no spend in range. Expenses referencing
// an unknown category are skipped.
func CategoryTotals(txns []ledger.Transaction, cats []ledger.Category, r Range) []CategoryTotal {
	totals := make([]CategoryTotal, len(cats))
	index := make(map[string]int, len(cats))
	for i, cat := range cats {
		totals[i] = CategoryTotal{ID: cat.ID, Name: cat.Name, Color: cat.Color, Icon: cat.Icon}
		index[cat.ID] = i
	}

	for _, txn := range txns {
		if txn.Type != ledger.TypeExpense {
			continue
		}
		if !r.Contains(txn.Date) {
			continue
		}
		if i, ok := index[txn.CategoryID]; ok {
			totals[i].Total += txn.Amount
		}
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		if ct.Total > 0 {
			out = append(out, ct)
		}
	}
	return out
}

// TrendPoint is the expense total of one calendar date.
type TrendPoint struct {
	Date   string
	Amount int64
}

// TrendSeries sums expense amounts per exact date within the range,
// sorted ascending by date string. ISO dates make lexicographic order
// chronological.
func TrendSeries(txns []ledger.Transaction, r Range) []TrendPoint {
	totals := make(map[string]int64)
	for _, txn := range txns {
		if txn.Type != ledger.TypeExpense {
			continue
		}
		if !r.Contains(txn.Date) {
			continue
		}
		totals[txn.Date] += txn.Amount
	}

	out := make([]TrendPoint, 0, len(totals))
	for date, amount := range totals {
		out = append(out, TrendPoint{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthTotals is the income/expense pair of one month key.
type MonthTotals struct {
	Month   string
	Income  int64
	Expense int64
}

// MonthlySeries sums income and expense per month key. The output
// always has one entry per input month in the same order; months with
// no transactions carry zero totals.
func MonthlySeries(txns []ledger.Transaction, months []string) []MonthTotals {
	index := make(map[string]int, len(months))
	out := make([]MonthTotals, len(months))
	for i, m := range months {
		out[i] = MonthTotals{Month: m}
		index[m] = i
	}

	for _, txn := range txns {
		i, ok := index[dates.MonthKey(txn.Date)]
		if !ok {
			continue
		}
		switch txn.Type {
		case ledger.TypeIncome:
			out[i].Income += txn.Amount
		case ledger.TypeExpense:
			out[i].Expense += txn.Amount
		}
	}
	return out
}

// SpendingByCategoryForMonth sums expense amounts per category id for
// transactions dated in the given month.
func SpendingByCategoryForMonth(txns []ledger.Transaction, monthKey string) map[string]int64 {
	out := make(map[string]int64)
	for _, txn := range txns {
		if txn.Type != ledger.TypeExpense {
			continue
		}
		if dates.MonthKey(txn.Date) != monthKey {
			continue
		}
		out[txn.CategoryID] += txn.Amount
	}
	return out
}

// BudgetsForMonth filters the budget set to one month.
func BudgetsForMonth(budgets []ledger.Budget, monthKey string) []ledger.Budget {
	out := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.Month == monthKey {
			out = append(out, b)
		}
	}
	return out
}
