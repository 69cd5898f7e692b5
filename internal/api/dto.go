package api

import (
	"time"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

type expenseJSON struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

type expenseRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

type budgetRequest struct {
	Limit float64 `json:"limit"`
}

type budgetJSON struct {
	Category   string  `json:"category"`
	Level      string  `json:"level"`
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

type categoryJSON struct {
	Limit      *float64 `json:"limit,omitempty"`
	Remaining  *float64 `json:"remaining,omitempty"`
	Value      string   `json:"value"`
	Label      string   `json:"label"`
	Color      string   `json:"color"`
	BgColor    string   `json:"bgColor"`
	Icon       string   `json:"icon"`
	Total      float64  `json:"total"`
	Percentage float64  `json:"percentage"`
}

type monthlyJSON struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type weeklyJSON struct {
	Label string  `json:"label"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	Total float64 `json:"total"`
}

type shareJSON struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type summaryJSON struct {
	GeneratedAt    time.Time     `json:"generatedAt"`
	TopCategory    *string       `json:"topCategory"`
	Recent         []expenseJSON `json:"recent"`
	Monthly        []monthlyJSON `json:"monthly"`
	Weekly         []weeklyJSON  `json:"weekly"`
	Categories     []shareJSON   `json:"categories"`
	Budgets        []budgetJSON  `json:"budgets"`
	TotalExpenses  float64       `json:"totalExpenses"`
	AverageMonthly float64       `json:"averageMonthly"`
	ExpenseCount   int           `json:"expenseCount"`
}

type errorJSON struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (r expenseRequest) input() model.ExpenseInput {
	return model.ExpenseInput{
		Date:        r.Date,
		Description: r.Description,
		Category:    model.Category(r.Category),
		Amount:      r.Amount,
	}
}

func toExpenseJSON(e model.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
	}
}

func toExpensesJSON(expenses []model.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	return out
}

func toBudgetsJSON(statuses []model.BudgetStatus) []budgetJSON {
	out := make([]budgetJSON, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, budgetJSON{
			Category:   string(s.Budget.Category),
			Level:      string(s.Level),
			Limit:      s.Budget.Limit,
			Spent:      s.Spent,
			Remaining:  s.Remaining,
			Percentage: s.Percentage,
		})
	}
	return out
}

func toCategoriesJSON(stats []model.CategoryStat) []categoryJSON {
	out := make([]categoryJSON, 0, len(stats))
	for _, s := range stats {
		info := model.Describe(s.Category)
		out = append(out, categoryJSON{
			Value:      string(s.Category),
			Label:      info.Label,
			Color:      info.ColorToken,
			BgColor:    info.BgColorToken,
			Icon:       info.IconRef,
			Total:      s.Total,
			Percentage: s.Percentage,
			Limit:      s.Limit,
			Remaining:  s.Remaining,
		})
	}
	return out
}

func toSummaryJSON(report *service.Report, recent int) summaryJSON {
	expenses := report.Expenses
	if len(expenses) > recent {
		expenses = expenses[:recent]
	}

	out := summaryJSON{
		GeneratedAt:    report.GeneratedAt,
		Recent:         toExpensesJSON(expenses),
		Monthly:        make([]monthlyJSON, 0, len(report.Monthly)),
		Weekly:         make([]weeklyJSON, 0, len(report.Weekly)),
		Categories:     make([]shareJSON, 0, len(report.Categories)),
		Budgets:        toBudgetsJSON(report.Budgets),
		TotalExpenses:  report.TotalExpenses,
		AverageMonthly: report.AverageMonthly,
		ExpenseCount:   report.ExpenseCount,
	}
	if report.TopCategory != nil {
		top := string(*report.TopCategory)
		out.TopCategory = &top
	}
	for _, m := range report.Monthly {
		out.Monthly = append(out.Monthly, monthlyJSON{Month: m.Month, Total: m.Total})
	}
	for _, w := range report.Weekly {
		out.Weekly = append(out.Weekly, weeklyJSON{Label: w.Label, Start: w.Start, End: w.End, Total: w.Total})
	}
	for _, c := range report.Categories {
		out.Categories = append(out.Categories, shareJSON{Category: string(c.Category), Amount: c.Amount, Percentage: c.Percentage})
	}
	return out
}
