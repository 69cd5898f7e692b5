package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Akash50142/expense-tracker/internal/model"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderExpenses renders expenses as a table.
func RenderExpenses(expenses []model.Expense) string {
	t := newTable("ID", "Date", "Description", "Category", "Amount")
	for _, e := range expenses {
		t.Row(e.ID, e.Date, e.Description, e.Category.Label(), FormatCurrency(e.Amount))
	}
	return t.String()
}

// RenderCategorySummary renders the spending share of each category.
func RenderCategorySummary(summary []model.CategorySummary) string {
	t := newTable("Category", "Amount", "Share", "")
	for _, s := range summary {
		t.Row(s.Category.Label(), FormatCurrency(s.Amount), FormatPercentage(s.Percentage), Bar(s.Percentage, 20))
	}
	return t.String()
}

// RenderBudgets renders budget utilization with a colored status column.
func RenderBudgets(statuses []model.BudgetStatus) string {
	t := newTable("Category", "Spent", "Limit", "Remaining", "Used", "Status")
	for _, s := range statuses {
		t.Row(
			s.Budget.Category.Label(),
			FormatCurrency(s.Spent),
			FormatCurrency(s.Budget.Limit),
			FormatCurrency(s.Remaining),
			fmt.Sprintf("%s %s", Bar(s.Percentage, 10), FormatPercentage(s.Percentage)),
			LevelStyle(s.Level).Render(string(s.Level)),
		)
	}
	return t.String()
}

// RenderCategoryStats renders the per-category table of the categories view.
func RenderCategoryStats(stats []model.CategoryStat) string {
	t := newTable("Category", "Spent", "Share", "Budget", "Remaining")
	for _, s := range stats {
		limit, remaining := "-", "-"
		if s.Limit != nil {
			limit = FormatCurrency(*s.Limit)
		}
		if s.Remaining != nil {
			remaining = FormatCurrency(*s.Remaining)
		}
		t.Row(s.Category.Label(), FormatCurrency(s.Total), FormatPercentage(s.Percentage), limit, remaining)
	}
	return t.String()
}

// RenderMonthly renders monthly totals, oldest first.
func RenderMonthly(months []model.MonthlyExpenseSummary) string {
	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Total)
	}

	t := newTable("Month", "Total", "")
	for _, m := range months {
		frac := 0.0
		if peak > 0 {
			frac = m.Total / peak
		}
		t.Row(FormatMonth(m.Month), FormatCurrency(m.Total), Bar(frac, 20))
	}
	return t.String()
}

// RenderWeekly renders weekly totals, oldest first.
func RenderWeekly(weeks []model.WeeklyExpenseSummary) string {
	t := newTable("Week", "Dates", "Total")
	for _, w := range weeks {
		t.Row(w.Label, FormatDate(w.Start)+" - "+FormatDate(w.End), FormatCurrency(w.Total))
	}
	return t.String()
}
