// Package tui is the interactive terminal frontend. It collects and
// validates raw input, invokes the repositories, and renders the
// returned values or reported errors. All state beyond the open screen
// is the single logged-in user.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"spendtrack/internal/core"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

// errQuit unwinds the prompt loops when the user asks to exit.
var errQuit = errors.New("quit")

type App struct {
	users    *storage.Users
	expenses *storage.Expenses
	reports  *services.ReportService

	in  *reader
	out io.Writer

	user core.User
}

func New(users *storage.Users, expenses *storage.Expenses, reports *services.ReportService, in io.Reader, out io.Writer) *App {
	return &App{
		users:    users,
		expenses: expenses,
		reports:  reports,
		in:       newReader(in),
		out:      out,
	}
}

// Run drives the screen loop until the user quits, input ends, or the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "spendtrack — personal expense tracker")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if a.user.ID == 0 {
			err = a.authScreen(ctx)
		} else {
			err = a.mainScreen(ctx)
		}

		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			fmt.Fprintln(a.out, "bye")
			return nil
		case err != nil:
			return err
		}
	}
}

func (a *App) authScreen(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n[1] login  [2] register  [q] quit")
	choice, err := a.in.line(a.out, "> ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.login(ctx)
	case "2":
		return a.register(ctx)
	case "q":
		return errQuit
	}
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := a.in.line(a.out, "username: ")
	if err != nil {
		return err
	}
	secret, err := a.in.secret(a.out, "password: ")
	if err != nil {
		return err
	}

	user, err := a.users.Login(ctx, username, secret)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		fmt.Fprintln(a.out, "invalid username or password")
		return nil
	}
	if err != nil {
		return err
	}

	a.user = user
	fmt.Fprintf(a.out, "welcome, %s\n", user.Username)
	return nil
}

func (a *App) register(ctx context.Context) error {
	username, err := a.in.line(a.out, "username: ")
	if err != nil {
		return err
	}
	email, err := a.in.line(a.out, "email: ")
	if err != nil {
		return err
	}
	secret, err := a.in.secret(a.out, "password (6+ characters): ")
	if err != nil {
		return err
	}

	if _, err := a.users.Register(ctx, username, email, secret); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateUsername),
			errors.Is(err, storage.ErrDuplicateEmail),
			errors.Is(err, core.ErrEmptyUsername),
			errors.Is(err, core.ErrEmptyEmail),
			errors.Is(err, core.ErrWeakSecret):
			fmt.Fprintln(a.out, err.Error())
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "registered — you can log in now")
	return nil
}

func (a *App) mainScreen(ctx context.Context) error {
	fmt.Fprintf(a.out, "\n%s> [1] add  [2] list  [3] filter  [4] edit  [5] delete  [6] summary  [7] logout  [q] quit\n", a.user.Username)
	choice, err := a.in.line(a.out, "> ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.addExpense(ctx)
	case "2":
		return a.listExpenses(ctx)
	case "3":
		return a.filterExpenses(ctx)
	case "4":
		return a.editExpense(ctx)
	case "5":
		return a.deleteExpense(ctx)
	case "6":
		return a.showSummary(ctx)
	case "7":
		a.user = core.User{}
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "q":
		return errQuit
	}
	return nil
}

func (a *App) addExpense(ctx context.Context) error {
	e, err := a.promptExpense(core.Expense{UserID: a.user.ID})
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}

	id, err := a.expenses.Add(ctx, *e)
	if err != nil {
		return a.reportExpenseError(err)
	}
	fmt.Fprintf(a.out, "saved expense #%d\n", id)
	return nil
}

func (a *App) listExpenses(ctx context.Context) error {
	expenses, err := a.expenses.GetAll(ctx, a.user.ID)
	if err != nil {
		return err
	}
	a.renderExpenses(expenses)
	return nil
}

func (a *App) filterExpenses(ctx context.Context) error {
	monthRaw, err := a.in.line(a.out, "month 1-12 (0 for all): ")
	if err != nil {
		return err
	}
	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 0 || month > 12 {
		fmt.Fprintln(a.out, "invalid month")
		return nil
	}

	category, err := a.promptCategory(true)
	if err != nil {
		return err
	}
	if category == "" {
		return nil
	}

	expenses, err := a.expenses.Filter(ctx, a.user.ID, storage.Filter{Month: month, Category: category})
	if err != nil {
		return err
	}
	a.renderExpenses(expenses)
	return nil
}

func (a *App) editExpense(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil || id == 0 {
		return err
	}

	current, found, err := a.expenses.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found || current.UserID != a.user.ID {
		fmt.Fprintln(a.out, "expense not found")
		return nil
	}

	e, err := a.promptExpense(current)
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}

	ok, err := a.expenses.Update(ctx, *e)
	if err != nil {
		return a.reportExpenseError(err)
	}
	if !ok {
		fmt.Fprintln(a.out, "expense not found")
		return nil
	}
	fmt.Fprintf(a.out, "updated expense #%d\n", e.ID)
	return nil
}

func (a *App) deleteExpense(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil || id == 0 {
		return err
	}

	// The screen only offers identifiers from the user's own listing;
	// the repository itself does not check ownership.
	if _, found, err := a.expenses.Get(ctx, id); err != nil {
		return err
	} else if !found {
		fmt.Fprintln(a.out, "expense not found")
		return nil
	}

	ok, err := a.expenses.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "expense not found")
		return nil
	}
	fmt.Fprintf(a.out, "deleted expense #%d\n", id)
	return nil
}

func (a *App) showSummary(ctx context.Context) error {
	summary, err := a.reports.Summary(ctx, a.user.ID)
	if err != nil {
		return err
	}
	a.renderSummary(summary)
	return nil
}

// reportExpenseError prints validation failures and propagates
// everything else.
func (a *App) reportExpenseError(err error) error {
	switch {
	case errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidDate):
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return err
}

func (a *App) promptID() (int64, error) {
	raw, err := a.in.line(a.out, "expense id: ")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "invalid id")
		return 0, nil
	}
	return id, nil
}
