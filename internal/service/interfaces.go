// Package service defines the interfaces shared between the engine, storage and outer layers.
package service

import (
	"context"
	"time"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// Storage is the persistence contract of the aggregation engine: two
// independently keyed collections, each loaded and saved as a whole.
//
// Load methods never fail; a missing or unreadable record yields an empty
// collection. Save methods overwrite the prior record. There is no
// transaction spanning both collections.
type Storage interface {
	LoadExpenses(ctx context.Context) []model.Expense
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	LoadBudgets(ctx context.Context) []model.Budget
	SaveBudgets(ctx context.Context, budgets []model.Budget) error

	// Clear removes both records.
	Clear(ctx context.Context) error
}

// ReportWriter publishes a spending report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// Report is a point-in-time snapshot of the engine's derived views.
type Report struct {
	GeneratedAt    time.Time
	TopCategory    *model.Category
	Expenses       []model.Expense
	Monthly        []model.MonthlyExpenseSummary
	Weekly         []model.WeeklyExpenseSummary
	Categories     []model.CategorySummary
	Budgets        []model.BudgetStatus
	TotalExpenses  float64
	AverageMonthly float64
	ExpenseCount   int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
