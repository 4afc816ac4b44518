package tui

import (
	"fmt"
	"text/tabwriter"

	"spendtrack/internal/core"
)

func (a *App) renderExpenses(expenses []core.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(a.out, "no expenses")
		return
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	var total int64
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.Title, e.Amount, e.Category, e.Description)
		total += e.Amount.Cents
	}
	fmt.Fprintf(w, "\t\t\t%s\t\t(%d expenses)\n", core.Money{Cents: total}, len(expenses))
	w.Flush()
}

func (a *App) renderSummary(s core.Summary) {
	fmt.Fprintf(a.out, "this month: %s\n", s.MonthTotal)
	fmt.Fprintf(a.out, "today:      %s\n", s.TodayTotal)
	if len(s.ByCategory) == 0 {
		return
	}
	fmt.Fprintln(a.out, "by category:")
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for _, ca := range s.ByCategory {
		fmt.Fprintf(w, "  %s\t%s\n", ca.Category, ca.Total)
	}
	w.Flush()
}
