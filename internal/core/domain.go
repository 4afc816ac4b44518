package core

import (
	"errors"
	"strings"
	"time"
)

// The category set is fixed; the store rejects anything outside it.
const (
	Food          Category = "Food"
	Travel        Category = "Travel"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Other         Category = "Other"

	// All is the filter sentinel meaning "no category restriction".
	// It is never a valid category for a stored expense.
	All Category = "All"
)

type (
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID          int64
		UserID      int64
		Title       string
		Amount      Money
		Category    Category
		Date        Date
		Description string // optional, may be empty
	}

	// User as returned to callers. The credential representation never
	// leaves the storage layer.
	User struct {
		ID       int64
		Username string
		Email    string
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyUsername   = errors.New("empty username")
	ErrEmptyEmail      = errors.New("empty email")
	ErrWeakSecret      = errors.New("secret must be at least 6 characters")
)

const (
	minSecretLen = 6
	dateLayout   = "2006-01-02"
)

// Categories returns the valid categories in display order.
func Categories() []Category {
	return []Category{Food, Travel, Shopping, Bills, Entertainment, Health, Other}
}

func (c Category) Valid() bool {
	switch c {
	case Food, Travel, Shopping, Bills, Entertainment, Health, Other:
		return true
	}
	return false
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a point in time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateRegistration checks the registration fields before any store
// access. Uniqueness is the store's job.
func ValidateRegistration(username, email, secret string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if len(secret) < minSecretLen {
		return ErrWeakSecret
	}
	return nil
}
