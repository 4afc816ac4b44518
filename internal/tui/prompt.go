package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"spendtrack/internal/core"
)

// reader wraps the input stream and hides secrets when it is attached
// to a real terminal.
type reader struct {
	raw io.Reader
	buf *bufio.Reader
}

func newReader(in io.Reader) *reader {
	return &reader{raw: in, buf: bufio.NewReader(in)}
}

func (r *reader) line(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := r.buf.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// secret reads a line without echo when stdin is a terminal, and falls
// back to plain line input otherwise (pipes, tests).
func (r *reader) secret(out io.Writer, label string) (string, error) {
	if f, ok := r.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return r.line(out, label)
}

// promptExpense collects the mutable fields of an expense, keeping
// base's values where the user submits an empty line. Returns nil when
// input was rejected before reaching the store.
func (a *App) promptExpense(base core.Expense) (*core.Expense, error) {
	e := base

	title, err := a.in.line(a.out, labelWithDefault("title", base.Title))
	if err != nil {
		return nil, err
	}
	if title != "" {
		e.Title = title
	}

	amountLabel := "amount: "
	if base.Amount.Cents > 0 {
		amountLabel = fmt.Sprintf("amount [%s]: ", base.Amount)
	}
	amountRaw, err := a.in.line(a.out, amountLabel)
	if err != nil {
		return nil, err
	}
	if amountRaw != "" {
		amount, err := core.ParseMoney(amountRaw)
		if err != nil {
			fmt.Fprintln(a.out, "invalid amount")
			return nil, nil
		}
		e.Amount = amount
	}

	category, err := a.promptCategory(false)
	if err != nil {
		return nil, err
	}
	if category == "" && base.Category == "" {
		fmt.Fprintln(a.out, "category is required")
		return nil, nil
	}
	if category != "" {
		e.Category = category
	}

	dateLabel := "date YYYY-MM-DD (empty for today): "
	if !base.Date.IsZero() {
		dateLabel = fmt.Sprintf("date YYYY-MM-DD [%s]: ", base.Date)
	}
	dateRaw, err := a.in.line(a.out, dateLabel)
	if err != nil {
		return nil, err
	}
	switch {
	case dateRaw != "":
		date, err := core.ParseDate(dateRaw)
		if err != nil {
			fmt.Fprintln(a.out, "invalid date")
			return nil, nil
		}
		e.Date = date
	case base.Date.IsZero():
		e.Date = core.DateOf(time.Now())
	}

	description, err := a.in.line(a.out, labelWithDefault("description", base.Description))
	if err != nil {
		return nil, err
	}
	if description != "" {
		e.Description = description
	}

	return &e, nil
}

// promptCategory lists the categories as a numbered menu. withAll adds
// the "no filter" sentinel. Returns "" when the choice was invalid or,
// for edits, when the current value should be kept.
func (a *App) promptCategory(withAll bool) (core.Category, error) {
	options := core.Categories()
	if withAll {
		options = append([]core.Category{core.All}, options...)
	}
	for i, c := range options {
		fmt.Fprintf(a.out, "  [%d] %s\n", i+1, c)
	}

	raw, err := a.in.line(a.out, "category: ")
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(options) {
		fmt.Fprintln(a.out, "invalid category")
		return "", nil
	}
	return options[n-1], nil
}

func labelWithDefault(name, current string) string {
	if current == "" {
		return name + ": "
	}
	return fmt.Sprintf("%s [%s]: ", name, current)
}
