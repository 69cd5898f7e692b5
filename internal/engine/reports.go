package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

// Report window defaults.
const (
	DefaultWeeks         = 4
	DefaultRecentCount   = 5
	DefaultAverageMonths = 6
)

// SortField selects the expense attribute used for ordering.
type SortField string

// Sortable expense attributes.
const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByCategory    SortField = "category"
	SortByDescription SortField = "description"
)

// SortOrder is the direction of an ordering.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortField converts a user-supplied field name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByDate, SortByAmount, SortByCategory, SortByDescription:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseSortOrder converts a user-supplied sort direction.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortAsc, SortDesc:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Thresholds are the budget utilization fractions above which a budget is
// reported as warning or danger.
type Thresholds struct {
	Warning float64
	Danger  float64
}

// DefaultThresholds returns the standard warning and danger levels.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 0.7, Danger: 0.9}
}

// Level classifies a utilization fraction.
func (t Thresholds) Level(pct float64) model.BudgetLevel {
	switch {
	case pct > t.Danger:
		return model.BudgetLevelDanger
	case pct > t.Warning:
		return model.BudgetLevelWarning
	default:
		return model.BudgetLevelOK
	}
}

// SortExpenses returns a sorted copy of expenses. Equal elements keep their
// relative order.
func SortExpenses(expenses []model.Expense, field SortField, order SortOrder) []model.Expense {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)

	cmp := func(a, b model.Expense) int {
		switch field {
		case SortByAmount:
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			}
			return 0
		case SortByCategory:
			return strings.Compare(string(a.Category), string(b.Category))
		case SortByDescription:
			return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		default:
			return strings.Compare(a.Date, b.Date)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// RecentExpenses returns up to n expenses, newest date first.
func (e *Engine) RecentExpenses(n int) []model.Expense {
	if n <= 0 {
		return []model.Expense{}
	}

	sorted := SortExpenses(e.Expenses(), SortByDate, SortDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WeeklyExpenses returns totals for weeks consecutive seven-day windows, the
// last of which ends today. Both window ends are inclusive. Windows are
// ordered oldest first and labelled "Week 1" to "Week n".
func (e *Engine) WeeklyExpenses(weeks int) []model.WeeklyExpenseSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weeklyExpenses(weeks)
}

func (e *Engine) weeklyExpenses(weeks int) []model.WeeklyExpenseSummary {
	if weeks <= 0 {
		return []model.WeeklyExpenseSummary{}
	}

	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]model.WeeklyExpenseSummary, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		end := today.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -6)

		var total float64
		for _, exp := range e.expenses {
			d, err := model.ParseDate(exp.Date)
			if err != nil || d.Before(start) || d.After(end) {
				continue
			}
			total += exp.Amount
		}

		out = append(out, model.WeeklyExpenseSummary{
			Label: fmt.Sprintf("Week %d", weeks-i),
			Start: model.FormatDate(start),
			End:   model.FormatDate(end),
			Total: total,
		})
	}
	return out
}

// AverageMonthly is the mean of the MonthlyExpenses(months) totals.
func (e *Engine) AverageMonthly(months int) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.averageMonthly(months)
}

func (e *Engine) averageMonthly(months int) float64 {
	series := e.monthlyExpenses(months)
	if len(series) == 0 {
		return 0
	}
	var total float64
	for _, m := range series {
		total += m.Total
	}
	return total / float64(len(series))
}

// MonthOverMonthChange compares the current month's total with the previous
// month's as a fraction of the latter. It is 0 when the previous month had
// no spending.
func (e *Engine) MonthOverMonthChange() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	series := e.monthlyExpenses(2)
	current, previous := series[1].Total, series[0].Total
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous
}

// TopCategory returns the category with the highest spending.
func (e *Engine) TopCategory() (model.Category, bool) {
	summary := e.CategorySummary()
	if len(summary) == 0 {
		return "", false
	}
	return summary[0].Category, true
}

// CategoryStats returns spending and budget figures for every registered
// category, highest total first.
func (e *Engine) CategoryStats() []model.CategoryStat {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := sumAmounts(e.expenses)
	cats := model.Categories()
	out := make([]model.CategoryStat, 0, len(cats))
	for _, c := range cats {
		spent := e.spentIn(c)
		stat := model.CategoryStat{
			Category:   c,
			Total:      spent,
			Percentage: share(spent, total),
		}
		if idx := e.indexOfBudget(c); idx >= 0 {
			limit := e.budgets[idx].Limit
			remaining := limit - spent
			stat.Limit = &limit
			stat.Remaining = &remaining
		}
		out = append(out, stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// BudgetStatuses reports utilization of every budget in collection order.
// A budget with a zero limit is in danger as soon as anything is spent.
func (e *Engine) BudgetStatuses(t Thresholds) []model.BudgetStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.budgetStatuses(t)
}

func (e *Engine) budgetStatuses(t Thresholds) []model.BudgetStatus {
	out := make([]model.BudgetStatus, 0, len(e.budgets))
	for _, b := range e.budgets {
		spent := e.spentIn(b.Category)
		status := model.BudgetStatus{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Limit - spent,
		}
		switch {
		case b.Limit != 0:
			status.Percentage = spent / b.Limit
			status.Level = t.Level(status.Percentage)
		case spent > 0:
			status.Level = model.BudgetLevelDanger
		default:
			status.Level = model.BudgetLevelOK
		}
		out = append(out, status)
	}
	return out
}

// ReportOptions sizes the windows of a Report.
type ReportOptions struct {
	Thresholds Thresholds
	Months     int
	Weeks      int
}

// DefaultReportOptions returns the standard report windows.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Months:     DefaultMonths,
		Weeks:      DefaultWeeks,
		Thresholds: DefaultThresholds(),
	}
}

// Report snapshots every derived view under a single read lock.
func (e *Engine) Report(opts ReportOptions) *service.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()

	expenses := SortExpenses(e.expenses, SortByDate, SortDesc)
	categories := e.categorySummary()

	report := &service.Report{
		GeneratedAt:    e.now(),
		Expenses:       expenses,
		Monthly:        e.monthlyExpenses(opts.Months),
		Weekly:         e.weeklyExpenses(opts.Weeks),
		Categories:     categories,
		Budgets:        e.budgetStatuses(opts.Thresholds),
		TotalExpenses:  sumAmounts(e.expenses),
		AverageMonthly: e.averageMonthly(opts.Months),
		ExpenseCount:   len(e.expenses),
	}
	if len(categories) > 0 {
		top := categories[0].Category
		report.TopCategory = &top
	}
	return report
}
