package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"spendtrack/internal/core"
)

// Expenses is the repository for expense rows and their aggregates.
type Expenses struct {
	store *Store
}

func NewExpenses(store *Store) *Expenses {
	return &Expenses{store: store}
}

const expenseColumns = "expense_id, user_id, title, amount_cents, category, expense_date, description"

// listOrder keeps listings deterministic: newest date first, insertion
// order within equal dates.
const listOrder = " ORDER BY expense_date DESC, expense_id ASC"

// Add validates the candidate record and inserts it, returning the
// assigned identifier. Invalid records never reach the store.
func (r *Expenses) Add(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := r.store.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, title, amount_cents, category, expense_date, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Amount.Cents, string(e.Category), e.Date.String(), e.Description)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read new expense id: %w", err)
	}

	slog.InfoContext(ctx, "expense saved",
		"expense_id", id,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category))
	return id, nil
}

// GetAll returns every expense owned by userID, newest first. A user
// with no expenses gets an empty slice, not an error.
func (r *Expenses) GetAll(ctx context.Context, userID int64) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ?"+listOrder,
		userID)
}

// Get returns a single expense by identifier.
func (r *Expenses) Get(ctx context.Context, id int64) (core.Expense, bool, error) {
	rows, err := r.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return core.Expense{}, false, err
	}
	if len(rows) == 0 {
		return core.Expense{}, false, nil
	}
	return rows[0], true, nil
}

// Update replaces all mutable fields of the row matching e's identifier.
// The owner is immutable and the row is matched by identifier alone;
// callers are responsible for only referencing their own identifiers.
// Returns false if no row matched.
func (r *Expenses) Update(ctx context.Context, e core.Expense) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	res, err := r.store.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount_cents = ?, category = ?, expense_date = ?, description = ?
		 WHERE expense_id = ?`,
		e.Title, e.Amount.Cents, string(e.Category), e.Date.String(), e.Description, e.ID)
	if err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count updated rows: %w", err)
	}
	return n > 0, nil
}

// Delete removes the row permanently. Returns false if it did not
// exist. Like Update, the row is matched by identifier alone.
func (r *Expenses) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.store.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count deleted rows: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expense deleted", "expense_id", id)
	}
	return n > 0, nil
}

// MonthlyTotal sums the user's expenses dated in the current calendar
// month. Zero when nothing matches.
func (r *Expenses) MonthlyTotal(ctx context.Context, userID int64) (core.Money, error) {
	now := r.store.now()
	window := fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
	return r.sum(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND strftime('%Y-%m', expense_date) = ?",
		userID, window)
}

// TodayTotal sums the user's expenses dated today. Zero when nothing
// matches.
func (r *Expenses) TodayTotal(ctx context.Context, userID int64) (core.Money, error) {
	today := core.DateOf(r.store.now())
	return r.sum(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND expense_date = ?",
		userID, today.String())
}

// CategoryTotals returns one entry per category the user has spent in.
// Categories with no expenses are absent, not present with zero.
func (r *Expenses) CategoryTotals(ctx context.Context, userID int64) (map[core.Category]core.Money, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT category, SUM(amount_cents) FROM expenses WHERE user_id = ? GROUP BY category",
		userID)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[core.Category]core.Money)
	for rows.Next() {
		var (
			cat   string
			cents int64
		)
		if err := rows.Scan(&cat, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals[core.Category(cat)] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read category totals: %w", err)
	}
	return totals, nil
}

func (r *Expenses) sum(ctx context.Context, query string, args ...any) (core.Money, error) {
	var cents int64
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return core.Money{}, fmt.Errorf("sum expenses: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func (r *Expenses) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(rows *sql.Rows) (core.Expense, error) {
	var (
		e    core.Expense
		cat  string
		date string
		desc sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount.Cents, &cat, &date, &desc); err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}

	e.Category = core.Category(cat)
	e.Date = d
	e.Description = desc.String
	return e, nil
}
