package sheets

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

// ExpenseRow represents a single row in the expense details section.
type ExpenseRow struct {
	Date        string
	Description string
	Category    string
	Amount      decimal.Decimal
}

// MonthlyRow represents one month of the monthly trend.
type MonthlyRow struct {
	Month string // e.g., "Jan 2024"
	Total decimal.Decimal
}

// WeeklyRow represents one week of the weekly trend.
type WeeklyRow struct {
	Label string
	Start string
	End   string
	Total decimal.Decimal
}

// CategoryRow represents a single row in the category breakdown.
type CategoryRow struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
}

// BudgetRow represents a single row in the budget status section.
type BudgetRow struct {
	Category   string
	Level      string
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage float64
}

// TabData holds everything written for one report.
type TabData struct {
	GeneratedAt    time.Time
	TopCategory    string
	TotalExpenses  decimal.Decimal
	AverageMonthly decimal.Decimal
	ExpenseCount   int
	Expenses       []ExpenseRow
	Monthly        []MonthlyRow
	Weekly         []WeeklyRow
	Categories     []CategoryRow
	Budgets        []BudgetRow
}

// money rounds a float amount to cents.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func monthLabel(key string) string {
	t, err := time.Parse(model.MonthLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// buildTabData converts a report into spreadsheet rows. Monetary values are
// rounded to cents so sums in the sheet match the displayed cells.
func buildTabData(report *service.Report) *TabData {
	data := &TabData{
		GeneratedAt:    report.GeneratedAt,
		TotalExpenses:  money(report.TotalExpenses),
		AverageMonthly: money(report.AverageMonthly),
		ExpenseCount:   report.ExpenseCount,
		Expenses:       make([]ExpenseRow, 0, len(report.Expenses)),
		Monthly:        make([]MonthlyRow, 0, len(report.Monthly)),
		Weekly:         make([]WeeklyRow, 0, len(report.Weekly)),
		Categories:     make([]CategoryRow, 0, len(report.Categories)),
		Budgets:        make([]BudgetRow, 0, len(report.Budgets)),
	}
	if report.TopCategory != nil {
		data.TopCategory = report.TopCategory.Label()
	}

	for _, e := range report.Expenses {
		data.Expenses = append(data.Expenses, ExpenseRow{
			Date:        e.Date,
			Description: e.Description,
			Category:    e.Category.Label(),
			Amount:      money(e.Amount),
		})
	}
	for _, m := range report.Monthly {
		data.Monthly = append(data.Monthly, MonthlyRow{Month: monthLabel(m.Month), Total: money(m.Total)})
	}
	for _, w := range report.Weekly {
		data.Weekly = append(data.Weekly, WeeklyRow{Label: w.Label, Start: w.Start, End: w.End, Total: money(w.Total)})
	}
	for _, c := range report.Categories {
		data.Categories = append(data.Categories, CategoryRow{
			Category:   c.Category.Label(),
			Amount:     money(c.Amount),
			Percentage: c.Percentage,
		})
	}
	for _, b := range report.Budgets {
		data.Budgets = append(data.Budgets, BudgetRow{
			Category:   b.Budget.Category.Label(),
			Level:      string(b.Level),
			Limit:      money(b.Budget.Limit),
			Spent:      money(b.Spent),
			Remaining:  money(b.Remaining),
			Percentage: b.Percentage,
		})
	}

	return data
}
