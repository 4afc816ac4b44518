package storage

import (
	"context"
	"fmt"

	"spendtrack/internal/core"
)

// Filter narrows an expense listing. The zero value applies no
// restriction beyond ownership. Month 0 means any month; core.All (or
// the empty string) means any category.
type Filter struct {
	Month    int
	Category core.Category
}

func (f Filter) byMonth() bool {
	return f.Month >= 1 && f.Month <= 12
}

func (f Filter) byCategory() bool {
	return f.Category != "" && f.Category != core.All
}

// clauses maps the filter onto fixed SQL fragments. Every value,
// including the zero-padded month, travels as a bound parameter.
func (f Filter) clauses(userID int64) (string, []any) {
	where := "user_id = ?"
	args := []any{userID}
	if f.byMonth() {
		where += " AND strftime('%m', expense_date) = ?"
		args = append(args, fmt.Sprintf("%02d", f.Month))
	}
	if f.byCategory() {
		where += " AND category = ?"
		args = append(args, string(f.Category))
	}
	return where, args
}

// Filter returns the user's expenses matching f, ordered like GetAll.
func (r *Expenses) Filter(ctx context.Context, userID int64, f Filter) ([]core.Expense, error) {
	where, args := f.clauses(userID)
	return r.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE "+where+listOrder,
		args...)
}
