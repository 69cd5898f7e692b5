package model

// MonthlyExpenseSummary is the spending total for one calendar month.
type MonthlyExpenseSummary struct {
	Month string
	Total float64
}

// WeeklyExpenseSummary is the spending total for a seven-day window.
type WeeklyExpenseSummary struct {
	Label string
	Start string
	End   string
	Total float64
}

// CategorySummary is the share of total spending that falls in one category.
type CategorySummary struct {
	Category   Category
	Amount     float64
	Percentage float64
}

// CategoryStat combines spending and budget figures for a category.
// Limit and Remaining are nil when the category has no budget.
type CategoryStat struct {
	Limit      *float64
	Remaining  *float64
	Category   Category
	Total      float64
	Percentage float64
}

// BudgetLevel classifies how much of a budget has been used.
type BudgetLevel string

// Budget utilization levels.
const (
	BudgetLevelOK      BudgetLevel = "ok"
	BudgetLevelWarning BudgetLevel = "warning"
	BudgetLevelDanger  BudgetLevel = "danger"
)

// BudgetStatus reports spending against one budget.
type BudgetStatus struct {
	Level      BudgetLevel
	Budget     Budget
	Spent      float64
	Remaining  float64
	Percentage float64
}
