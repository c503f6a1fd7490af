package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"thonex/internal/dates"
	"thonex/internal/derive"
	"thonex/internal/format"
	"thonex/internal/ledger"
)

// runReport renders the dashboard: overall and month-to-date totals,
// the month's category breakdown, the six-month series and any budget
// alerts.
func runReport(led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	month := fs.String("month", dates.MonthKeyOf(time.Now()), "month key (YYYY-MM)")
	fs.Parse(args)

	if !dates.ValidMonthKey(*month) {
		return fmt.Errorf("invalid month key %q", *month)
	}

	txns := led.Transactions()
	cats := led.Categories()
	budgets := led.Budgets()
	currency := led.Settings().Currency

	totals := derive.TotalsByType(txns)
	mtd := derive.TotalsForMonth(txns, *month)

	fmt.Printf("All time: income %s, expense %s, net %s\n",
		format.Money(totals.Income, currency),
		format.Money(totals.Expense, currency),
		format.Money(totals.Net(), currency))
	fmt.Printf("%s: income %s, expense %s, net %s\n\n",
		format.MonthLabel(*month),
		format.Money(mtd.Income, currency),
		format.Money(mtd.Expense, currency),
		format.Money(mtd.Net(), currency))

	monthRange := derive.Range{Start: *month + "-01", End: *month + "-31"}
	breakdown := derive.CategoryTotals(txns, cats, monthRange)
	if len(breakdown) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Spending by category, " + format.MonthLabel(*month))
		t.AppendHeader(table.Row{"Category", "Total"})
		for _, ct := range breakdown {
			t.AppendRow(table.Row{ct.Icon + " " + ct.Name, format.Money(ct.Total, currency)})
		}
		t.Render()
		fmt.Println()
	}

	series := derive.MonthlySeries(txns, dates.LastNMonths(6, time.Now()))
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Last 6 months")
	t.AppendHeader(table.Row{"Month", "Income", "Expense", "Net"})
	for _, m := range series {
		net := m.Income - m.Expense
		t.AppendRow(table.Row{
			format.MonthLabel(m.Month),
			format.Money(m.Income, currency),
			format.Money(m.Expense, currency),
			format.Money(net, currency),
		})
	}
	t.Render()

	alerts := derive.BudgetAlerts(txns, budgets, cats, *month)
	if len(alerts) > 0 {
		fmt.Println()
		for _, a := range alerts {
			fmt.Printf("%s %s: spent %s of %s\n",
				text.FgRed.Sprint("over budget"),
				a.CategoryName,
				format.Money(a.Spent, currency),
				format.Money(a.Limit, currency))
		}
	}
	return nil
}
