// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for expense dates.
const DateLayout = "2006-01-02"

// MonthLayout is the format of month keys in monthly summaries.
const MonthLayout = "2006-01"

// Validation errors reported by the input validators.
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidLimit     = errors.New("budget limit must be greater than zero")
)

// Expense is a single recorded transaction.
type Expense struct {
	ID          string
	Date        string
	Description string
	Category    Category
	Amount      float64
}

// ExpenseInput carries the fields of a new expense; the ID is assigned on creation.
type ExpenseInput struct {
	Date        string
	Description string
	Category    Category
	Amount      float64
}

// Budget is the monthly spending ceiling for one category.
type Budget struct {
	Category Category
	Limit    float64
}

// Input returns the expense without its ID.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
	}
}

// WithID returns an Expense built from the input and the given ID.
func (in ExpenseInput) WithID(id string) Expense {
	return Expense{
		ID:          id,
		Date:        in.Date,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
	}
}

// Validate applies the entry-form rules to an expense before it is handed to the engine.
// The engine itself accepts any structurally valid input.
func (in ExpenseInput) Validate() error {
	var errs []error

	if in.Amount <= 0 {
		errs = append(errs, ErrInvalidAmount)
	}

	if strings.TrimSpace(in.Date) == "" {
		errs = append(errs, ErrMissingDate)
	} else if _, err := ParseDate(in.Date); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, ErrEmptyDescription)
	}

	if !in.Category.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCategory, string(in.Category)))
	}

	return errors.Join(errs...)
}

// Validate applies the budget-form rules.
func (b Budget) Validate() error {
	if !b.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(b.Category))
	}
	if b.Limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
