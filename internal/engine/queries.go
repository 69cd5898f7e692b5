package engine

import (
	"sort"
	"time"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// DefaultMonths is the length of the monthly series shown by default.
const DefaultMonths = 6

// Expenses returns a copy of all expenses in insertion order.
func (e *Engine) Expenses() []model.Expense {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Expense, len(e.expenses))
	copy(out, e.expenses)
	return out
}

// Budgets returns a copy of all budgets in insertion order.
func (e *Engine) Budgets() []model.Budget {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]model.Budget, len(e.budgets))
	copy(out, e.budgets)
	return out
}

// Budget returns the budget for category, if any.
func (e *Engine) Budget(category model.Category) (model.Budget, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if idx := e.indexOfBudget(category); idx >= 0 {
		return e.budgets[idx], true
	}
	return model.Budget{}, false
}

// Expense returns the expense with the given id, if any.
func (e *Engine) Expense(id string) (model.Expense, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if idx := e.indexOfExpense(id); idx >= 0 {
		return e.expenses[idx], true
	}
	return model.Expense{}, false
}

// ExpensesByCategory returns the expenses in category, in collection order.
func (e *Engine) ExpensesByCategory(category model.Category) []model.Expense {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []model.Expense{}
	for _, exp := range e.expenses {
		if exp.Category == category {
			out = append(out, exp)
		}
	}
	return out
}

// TotalExpenses sums every expense amount.
func (e *Engine) TotalExpenses() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sumAmounts(e.expenses)
}

// TotalExpensesByCategory sums the expenses in category.
func (e *Engine) TotalExpensesByCategory(category model.Category) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.spentIn(category)
}

// MonthlyExpenses returns one total per calendar month for the months
// calendar months ending with the current one, oldest first. Months without
// expenses are included with a zero total.
func (e *Engine) MonthlyExpenses(months int) []model.MonthlyExpenseSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.monthlyExpenses(months)
}

func (e *Engine) monthlyExpenses(months int) []model.MonthlyExpenseSummary {
	if months <= 0 {
		return []model.MonthlyExpenseSummary{}
	}

	byMonth := make(map[string]float64)
	for _, exp := range e.expenses {
		d, err := model.ParseDate(exp.Date)
		if err != nil {
			continue
		}
		byMonth[d.Format(model.MonthLayout)] += exp.Amount
	}

	now := e.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]model.MonthlyExpenseSummary, 0, months)
	for i := months - 1; i >= 0; i-- {
		key := first.AddDate(0, -i, 0).Format(model.MonthLayout)
		out = append(out, model.MonthlyExpenseSummary{Month: key, Total: byMonth[key]})
	}
	return out
}

// CategorySummary returns every category that has at least one expense with
// its amount and share of the overall total, largest first. Categories with
// equal amounts keep the order in which they first appear.
func (e *Engine) CategorySummary() []model.CategorySummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.categorySummary()
}

func (e *Engine) categorySummary() []model.CategorySummary {
	total := sumAmounts(e.expenses)

	var order []model.Category
	amounts := make(map[model.Category]float64)
	for _, exp := range e.expenses {
		if _, seen := amounts[exp.Category]; !seen {
			order = append(order, exp.Category)
		}
		amounts[exp.Category] += exp.Amount
	}

	out := make([]model.CategorySummary, 0, len(order))
	for _, c := range order {
		out = append(out, model.CategorySummary{
			Category:   c,
			Amount:     amounts[c],
			Percentage: share(amounts[c], total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// RemainingBudget returns limit minus spending for category. The result is
// negative when overspent. ok is false when the category has no budget.
func (e *Engine) RemainingBudget(category model.Category) (remaining float64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx := e.indexOfBudget(category)
	if idx < 0 {
		return 0, false
	}
	return e.budgets[idx].Limit - e.spentIn(category), true
}

// BudgetPercentage returns spending divided by the limit for category, which
// may exceed 1. ok is false when there is no budget or its limit is zero.
func (e *Engine) BudgetPercentage(category model.Category) (pct float64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx := e.indexOfBudget(category)
	if idx < 0 || e.budgets[idx].Limit == 0 {
		return 0, false
	}
	return e.spentIn(category) / e.budgets[idx].Limit, true
}

// FilterExpenses returns the expenses matching every criterion set in
// filter, in collection order.
func (e *Engine) FilterExpenses(filter model.ExpenseFilter) []model.Expense {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []model.Expense{}
	for _, exp := range e.expenses {
		if filter.Matches(exp) {
			out = append(out, exp)
		}
	}
	return out
}

func (e *Engine) spentIn(category model.Category) float64 {
	var total float64
	for _, exp := range e.expenses {
		if exp.Category == category {
			total += exp.Amount
		}
	}
	return total
}

func sumAmounts(expenses []model.Expense) float64 {
	var total float64
	for _, exp := range expenses {
		total += exp.Amount
	}
	return total
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total
}
