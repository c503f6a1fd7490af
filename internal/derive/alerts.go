package derive

import (
	"sort"

	"thonex/internal/ledger"
)

// maxBudgetAlerts caps the alert list to the largest overruns; the
// dashboard only has room for three.
const maxBudgetAlerts = 3

// Alert is one budget overrun in the alert ranking.
type Alert struct {
	Month        string
	CategoryID   string
	CategoryName string
	Color        string
	Limit        int64
	Spent        int64
}

// unknownCategoryColor is the render fallback for dangling references.
const unknownCategoryColor = "#6b7280"

// BudgetAlerts joins the month's budgets with its per-category spend,
// keeps the entries where spent exceeds the limit, sorts them by spent
// descending, and caps the result at the three largest overruns.
// Budgets pointing at a deleted category still alert, labeled Unknown.
func BudgetAlerts(txns []ledger.Transaction, budgets []ledger.Budget, cats []ledger.Category, monthKey string) []Alert {
	spending := SpendingByCategoryForMonth(txns, monthKey)

	names := make(map[string]ledger.Category, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat
	}

	alerts := make([]Alert, 0, len(budgets))
	for _, b := range BudgetsForMonth(budgets, monthKey) {
		spent := spending[b.CategoryID]
		if spent <= b.Limit {
			continue
		}
		a := Alert{
			Month:        b.Month,
			CategoryID:   b.CategoryID,
			CategoryName: "Unknown",
			Color:        unknownCategoryColor,
			Limit:        b.Limit,
			Spent:        spent,
		}
		if cat, ok := names[b.CategoryID]; ok {
			a.CategoryName = cat.Name
			a.Color = cat.Color
		}
		alerts = append(alerts, a)
	}

	// Stable so equal overruns keep budget-set order.
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Spent > alerts[j].Spent })
	if len(alerts) > maxBudgetAlerts {
		alerts = alerts[:maxBudgetAlerts]
	}
	return alerts
}
