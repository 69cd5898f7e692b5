package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/testutil"
)

func TestWeeklyExpenses(t *testing.T) {
	// FixedNow is 2024-03-15.
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(1, model.CategoryFood, "2024-03-15", "today"),
			testutil.Expense(2, model.CategoryFood, "2024-03-09", "start of week 4"),
			testutil.Expense(4, model.CategoryFood, "2024-03-08", "end of week 3"),
			testutil.Expense(8, model.CategoryFood, "2024-02-17", "start of week 1"),
			testutil.Expense(16, model.CategoryFood, "2024-02-16", "before window"),
			testutil.Expense(32, model.CategoryFood, "2024-03-16", "tomorrow"),
		},
	})

	got := te.WeeklyExpenses(engine.DefaultWeeks)
	assert.Equal(t, []model.WeeklyExpenseSummary{
		{Label: "Week 1", Start: "2024-02-17", End: "2024-02-23", Total: 8},
		{Label: "Week 2", Start: "2024-02-24", End: "2024-03-01", Total: 0},
		{Label: "Week 3", Start: "2024-03-02", End: "2024-03-08", Total: 4},
		{Label: "Week 4", Start: "2024-03-09", End: "2024-03-15", Total: 3},
	}, got)

	assert.Empty(t, te.WeeklyExpenses(0))
}

func TestAverageMonthly(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(300, model.CategoryHousing, "2024-03-01", "a"),
			testutil.Expense(300, model.CategoryHousing, "2024-01-01", "b"),
		},
	})

	assert.InDelta(t, 200, te.AverageMonthly(3), 1e-9)
	assert.InDelta(t, 100, te.AverageMonthly(6), 1e-9)
	assert.Zero(t, te.AverageMonthly(0))
}

func TestMonthOverMonthChange(t *testing.T) {
	tests := []struct {
		name     string
		expenses []model.ExpenseInput
		want     float64
	}{
		{
			name: "increase",
			expenses: []model.ExpenseInput{
				testutil.Expense(100, model.CategoryFood, "2024-02-10", "feb"),
				testutil.Expense(150, model.CategoryFood, "2024-03-10", "mar"),
			},
			want: 0.5,
		},
		{
			name: "decrease",
			expenses: []model.ExpenseInput{
				testutil.Expense(200, model.CategoryFood, "2024-02-10", "feb"),
				testutil.Expense(50, model.CategoryFood, "2024-03-10", "mar"),
			},
			want: -0.75,
		},
		{
			name: "no previous spending",
			expenses: []model.ExpenseInput{
				testutil.Expense(50, model.CategoryFood, "2024-03-10", "mar"),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{Expenses: tt.expenses})
			assert.InDelta(t, tt.want, te.MonthOverMonthChange(), 1e-9)
		})
	}
}

func TestTopCategory(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(10, model.CategoryFood, "2024-03-01", "a"),
			testutil.Expense(90, model.CategoryTransportation, "2024-03-01", "b"),
		},
	})

	top, ok := te.TopCategory()
	require.True(t, ok)
	assert.Equal(t, model.CategoryTransportation, top)
}

func TestRecentExpenses(t *testing.T) {
	inputs := []model.ExpenseInput{}
	for _, d := range []string{"2024-03-01", "2024-03-09", "2024-02-20", "2024-03-12", "2024-03-05", "2024-03-12", "2024-01-01"} {
		inputs = append(inputs, testutil.Expense(1, model.CategoryFood, d, d))
	}
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{Expenses: inputs})

	got := te.RecentExpenses(engine.DefaultRecentCount)
	require.Len(t, got, 5)

	dates := make([]string, 0, len(got))
	for _, e := range got {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []string{"2024-03-12", "2024-03-12", "2024-03-09", "2024-03-05", "2024-03-01"}, dates)
	// Equal dates keep insertion order.
	assert.Equal(t, "exp-4", got[0].ID)
	assert.Equal(t, "exp-6", got[1].ID)

	assert.Len(t, te.RecentExpenses(100), len(inputs))
	assert.Empty(t, te.RecentExpenses(0))
}

func TestSortExpenses(t *testing.T) {
	expenses := []model.Expense{
		{ID: "1", Amount: 30, Category: model.CategoryHousing, Date: "2024-03-02", Description: "rent"},
		{ID: "2", Amount: 10, Category: model.CategoryFood, Date: "2024-03-03", Description: "Apples"},
		{ID: "3", Amount: 20, Category: model.CategoryDebt, Date: "2024-03-01", Description: "card"},
	}

	tests := []struct {
		field engine.SortField
		order engine.SortOrder
		want  []string
	}{
		{field: engine.SortByDate, order: engine.SortAsc, want: []string{"3", "1", "2"}},
		{field: engine.SortByDate, order: engine.SortDesc, want: []string{"2", "1", "3"}},
		{field: engine.SortByAmount, order: engine.SortAsc, want: []string{"2", "3", "1"}},
		{field: engine.SortByAmount, order: engine.SortDesc, want: []string{"1", "3", "2"}},
		{field: engine.SortByCategory, order: engine.SortAsc, want: []string{"3", "2", "1"}},
		{field: engine.SortByDescription, order: engine.SortAsc, want: []string{"2", "3", "1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"_"+string(tt.order), func(t *testing.T) {
			got := engine.SortExpenses(expenses, tt.field, tt.order)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Equal(t, "1", expenses[0].ID, "input is not modified")
}

func TestParseSortFieldAndOrder(t *testing.T) {
	f, err := engine.ParseSortField(" Amount ")
	require.NoError(t, err)
	assert.Equal(t, engine.SortByAmount, f)

	_, err = engine.ParseSortField("size")
	assert.Error(t, err)

	o, err := engine.ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, engine.SortDesc, o)

	_, err = engine.ParseSortOrder("sideways")
	assert.Error(t, err)
}

func TestCategoryStats(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(75, model.CategoryFood, "2024-03-01", "a"),
			testutil.Expense(25, model.CategoryTransportation, "2024-03-01", "b"),
		},
		Budgets: []model.Budget{{Category: model.CategoryFood, Limit: 100}},
	})

	stats := te.CategoryStats()
	require.Len(t, stats, len(model.Categories()))

	assert.Equal(t, model.CategoryFood, stats[0].Category)
	assert.InDelta(t, 0.75, stats[0].Percentage, 1e-9)
	require.NotNil(t, stats[0].Limit)
	require.NotNil(t, stats[0].Remaining)
	assert.InDelta(t, 100, *stats[0].Limit, 1e-9)
	assert.InDelta(t, 25, *stats[0].Remaining, 1e-9)

	assert.Equal(t, model.CategoryTransportation, stats[1].Category)
	assert.Nil(t, stats[1].Limit)
	assert.Nil(t, stats[1].Remaining)

	// Zero-spend categories follow in declaration order.
	assert.Equal(t, model.CategoryHousing, stats[2].Category)
	assert.Zero(t, stats[2].Total)
}

func TestBudgetStatuses(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(50, model.CategoryFood, "2024-03-01", "a"),
			testutil.Expense(80, model.CategoryTransportation, "2024-03-01", "b"),
			testutil.Expense(95, model.CategoryHousing, "2024-03-01", "c"),
			testutil.Expense(1, model.CategoryOther, "2024-03-01", "d"),
		},
		Budgets: []model.Budget{
			{Category: model.CategoryFood, Limit: 100},
			{Category: model.CategoryTransportation, Limit: 100},
			{Category: model.CategoryHousing, Limit: 100},
			{Category: model.CategoryOther, Limit: 0},
			{Category: model.CategorySavings, Limit: 0},
		},
	})

	statuses := te.BudgetStatuses(engine.DefaultThresholds())
	require.Len(t, statuses, 5)

	levels := make([]model.BudgetLevel, 0, len(statuses))
	for _, s := range statuses {
		levels = append(levels, s.Level)
	}
	assert.Equal(t, []model.BudgetLevel{
		model.BudgetLevelOK,
		model.BudgetLevelWarning,
		model.BudgetLevelDanger,
		model.BudgetLevelDanger,
		model.BudgetLevelOK,
	}, levels)

	assert.InDelta(t, 0.8, statuses[1].Percentage, 1e-9)
	assert.InDelta(t, 20, statuses[1].Remaining, 1e-9)
}

func TestThresholds_Level(t *testing.T) {
	th := engine.DefaultThresholds()

	assert.Equal(t, model.BudgetLevelOK, th.Level(0.7))
	assert.Equal(t, model.BudgetLevelWarning, th.Level(0.71))
	assert.Equal(t, model.BudgetLevelWarning, th.Level(0.9))
	assert.Equal(t, model.BudgetLevelDanger, th.Level(0.91))
	assert.Equal(t, model.BudgetLevelDanger, th.Level(3))
}

func TestReport(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{
		Expenses: []model.ExpenseInput{
			testutil.Expense(60, model.CategoryFood, "2024-03-01", "a"),
			testutil.Expense(40, model.CategoryDebt, "2024-03-10", "b"),
		},
		Budgets: []model.Budget{{Category: model.CategoryFood, Limit: 100}},
	})

	report := te.Report(engine.DefaultReportOptions())
	assert.Equal(t, testutil.FixedNow, report.GeneratedAt)
	assert.Equal(t, 2, report.ExpenseCount)
	assert.InDelta(t, 100, report.TotalExpenses, 1e-9)
	assert.Len(t, report.Monthly, engine.DefaultMonths)
	assert.Len(t, report.Weekly, engine.DefaultWeeks)
	assert.Len(t, report.Categories, 2)
	assert.Len(t, report.Budgets, 1)
	require.NotNil(t, report.TopCategory)
	assert.Equal(t, model.CategoryFood, *report.TopCategory)
	assert.Equal(t, "2024-03-10", report.Expenses[0].Date, "newest first")
	assert.InDelta(t, 100.0/6, report.AverageMonthly, 1e-9)
}

func TestReport_Empty(t *testing.T) {
	te := testutil.SetupTestEngine(t, testutil.TestEngineOptions{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	report := te.Report(engine.DefaultReportOptions())
	assert.Nil(t, report.TopCategory)
	assert.Zero(t, report.ExpenseCount)
	assert.Empty(t, report.Expenses)
}
