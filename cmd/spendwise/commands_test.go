package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/model"
)

func TestExpensesLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expenses", "add", "--amount", "42.50", "--category", "food", "--date", "2024-03-10", "--description", " Groceries ")
	assert.Contains(t, out, "Recorded $42.50 for Food & Groceries on 2024-03-10")

	env.mustRun("expenses", "add", "-a", "1200", "-c", "housing", "-d", "2024-03-01", "-m", "Rent")

	expenses := env.expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, "Groceries", expenses[0].Description)

	out = env.mustRun("expenses", "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "2 expenses, $1,242.50 total")

	out = env.mustRun("expenses", "list", "--category", "food")
	assert.NotContains(t, out, "Rent")
	assert.Contains(t, out, "1 expenses, $42.50 total")

	out = env.mustRun("expenses", "list", "--match", "^Re")
	assert.Contains(t, out, "Rent")
	assert.NotContains(t, out, "Groceries")

	out = env.mustRun("expenses", "list", "--from", "2025-01-01")
	assert.Contains(t, out, "No expenses found.")

	id := expenses[1].ID
	out = env.mustRun("expenses", "update", id, "--amount", "1250", "--description", "Rent (March)")
	assert.Contains(t, out, "Updated expense "+id)

	expenses = env.expenses()
	require.Len(t, expenses, 2)
	assert.InDelta(t, 1250, expenses[1].Amount, 1e-9)
	assert.Equal(t, "Rent (March)", expenses[1].Description)
	assert.Equal(t, model.CategoryHousing, expenses[1].Category)

	out = env.mustRun("expenses", "delete", id)
	assert.Contains(t, out, "Deleted expense "+id)
	assert.Len(t, env.expenses(), 1)

	_, err := env.run("", "expenses", "delete", id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExpensesAdd_Interactive(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("12.50\nfood\n2024-03-01\nLunch\n", "expenses", "add")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Recorded $12.50")

	expenses := env.expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, model.Expense{
		ID:          expenses[0].ID,
		Date:        "2024-03-01",
		Description: "Lunch",
		Category:    model.CategoryFood,
		Amount:      12.5,
	}, expenses[0])
}

func TestExpensesAdd_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "negative amount", args: []string{"--amount", "-5", "--description", "x"}, wantErr: model.ErrInvalidAmount},
		{name: "missing description", args: []string{"--amount", "5"}, wantErr: model.ErrEmptyDescription},
		{name: "bad date", args: []string{"--amount", "5", "--description", "x", "--date", "03/01/2024"}, wantErr: model.ErrInvalidDate},
		{name: "unknown category", args: []string{"--amount", "5", "--description", "x", "--category", "pets"}, wantErr: model.ErrInvalidCategory},
		{name: "unparseable amount", args: []string{"--amount", "lots", "--description", "x"}, wantErr: model.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run("", append([]string{"expenses", "add"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, env.expenses())
}

func TestExpensesAmountFormats(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expenses", "add", "--amount", "$1,200.499", "-m", "Laptop")
	assert.Contains(t, out, "Recorded $1,200.50")

	expenses := env.expenses()
	require.Len(t, expenses, 1)
	assert.InDelta(t, 1200.5, expenses[0].Amount, 1e-9)

	env.mustRun("expenses", "update", expenses[0].ID, "--amount", "$999")
	assert.InDelta(t, 999, env.expenses()[0].Amount, 1e-9)

	_, err := env.run("", "expenses", "update", expenses[0].ID, "--amount", "cheap")
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	out, err = env.run("$2,500\nhousing\n2024-03-01\nRent\n", "expenses", "add")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Recorded $2,500.00 for Housing")
}

func TestExpensesRecent(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expenses", "recent")
	assert.Contains(t, out, "No expenses recorded yet.")

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		env.mustRun("expenses", "add", "-a", "1", "-m", "on "+date, "-d", date)
	}

	out = env.mustRun("expenses", "recent", "-n", "2")
	assert.Contains(t, out, "on 2024-03-01")
	assert.Contains(t, out, "on 2024-02-01")
	assert.NotContains(t, out, "on 2024-01-01")
}

func TestBudgetsCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("budgets", "list")
	assert.Contains(t, out, "No budgets set.")

	out = env.mustRun("budgets", "set", "food", "$600")
	assert.Contains(t, out, "Food & Groceries budget set to $600.00")

	out = env.mustRun("expenses", "add", "-a", "550", "-c", "food", "-m", "Party")
	assert.Contains(t, out, "Food & Groceries budget is 92% used ($50.00 left)")

	out = env.mustRun("budgets", "list")
	assert.Contains(t, out, "Food & Groceries")
	assert.Contains(t, out, "danger")

	_, err := env.run("", "budgets", "set", "food", "0")
	assert.ErrorIs(t, err, model.ErrInvalidLimit)
	_, err = env.run("", "budgets", "set", "food", "lots")
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	out = env.mustRun("budgets", "remove", "food")
	assert.Contains(t, out, "Removed the Food & Groceries budget")

	out = env.mustRun("budgets", "remove", "food")
	assert.Contains(t, out, "has no budget")
}

func TestSummaryAndCategories(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("summary")
	assert.Contains(t, out, "No expenses recorded yet.")

	env.mustRun("expenses", "add", "-a", "30", "-c", "transportation", "-m", "Bus pass")
	env.mustRun("budgets", "set", "transportation", "100")

	out = env.mustRun("summary", "--months", "3", "--weeks", "2")
	assert.Contains(t, out, "Total spent:")
	assert.Contains(t, out, "$30.00")
	assert.Contains(t, out, "Transportation")
	assert.Contains(t, out, "Monthly Trend")
	assert.Contains(t, out, "Budgets")

	_, err := env.run("", "summary", "--months", "0")
	assert.Error(t, err)

	out = env.mustRun("categories")
	for _, opt := range model.CategoryOptions() {
		assert.Contains(t, out, opt.Label)
	}

	out = env.mustRun("categories", "--names")
	assert.Contains(t, out, "healthcare")
}

func TestResetCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("reset", "--force")
	assert.Contains(t, out, "Nothing to reset.")

	env.mustRun("expenses", "add", "-a", "10", "-m", "coffee")
	env.mustRun("budgets", "set", "food", "100")

	t.Run("declined confirmation keeps data", func(t *testing.T) {
		out, err := env.run("n\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "This will delete 1 expenses and 1 budgets.")
		assert.Contains(t, out, "Reset canceled.")
		assert.Len(t, env.expenses(), 1)
	})

	t.Run("confirmed reset backs up and clears", func(t *testing.T) {
		out, err := env.run("y\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "Saved backup auto-reset-")
		assert.Contains(t, out, "Deleted 1 expenses and 1 budgets")
		assert.Empty(t, env.expenses())

		out = env.mustRun("backup", "list")
		assert.Contains(t, out, "auto-reset-")
		assert.Contains(t, out, "auto")
	})
}

func TestBackupCommands(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("expenses", "add", "-a", "10", "-m", "before")
	out := env.mustRun("backup", "create", "--tag", "snap", "-d", "one expense")
	assert.Contains(t, out, "Created backup snap")
	assert.Contains(t, out, "1 expenses, 0 budgets")

	env.mustRun("expenses", "add", "-a", "20", "-m", "after")
	require.Len(t, env.expenses(), 2)

	out = env.mustRun("backup", "restore", "snap", "--force")
	assert.Contains(t, out, "Restored from backup snap")

	expenses := env.expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, "before", expenses[0].Description)

	_, err := env.run("", "backup", "restore", "nope", "--force")
	assert.Error(t, err)

	out = env.mustRun("backup", "delete", "snap")
	assert.Contains(t, out, "Deleted backup snap")

	out = env.mustRun("backup", "list")
	assert.Contains(t, out, "No backups found.")
}

func TestBackup_MemoryBackend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SPENDWISE_DATABASE_BACKEND", "memory")

	_, err := env.run("", "backup", "create")
	assert.ErrorIs(t, err, errMemoryBackend)
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("import", "testdata/checking.ofx", "--dry-run")
	assert.Contains(t, out, "3 expenses, 1 credits skipped (account 1234567890)")
	assert.Contains(t, out, "Dry run: 3 expenses would be imported, 0 duplicates skipped.")
	assert.Empty(t, env.expenses())

	out = env.mustRun("import", "testdata/*.ofx", "--category", "food", "--no-backup")
	assert.Contains(t, out, "Imported 3 expenses (0 duplicates, 1 credits skipped)")

	expenses := env.expenses()
	require.Len(t, expenses, 3)
	for _, e := range expenses {
		assert.Equal(t, model.CategoryFood, e.Category)
	}
	assert.Equal(t, "2024-01-15", expenses[0].Date)
	assert.InDelta(t, 25.5, expenses[0].Amount, 1e-9)

	out = env.mustRun("import", "testdata/checking.ofx")
	assert.Contains(t, out, "Nothing new to import (3 duplicates).")

	_, err := env.run("", "import", "testdata/none-*.qfx")
	assert.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestInvalidConfiguration(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SPENDWISE_REPORTS_MONTHS", "0")

	_, err := env.run("", "summary")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("version"), "spendwise dev")
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.0 KB", formatFileSize(1024))
	assert.Equal(t, "1.5 MB", formatFileSize(1536*1024))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: 90 * time.Second, want: "1 minute ago"},
		{ago: 15 * time.Minute, want: "15 minutes ago"},
		{ago: 90 * time.Minute, want: "1 hour ago"},
		{ago: 5 * time.Hour, want: "5 hours ago"},
		{ago: 30 * time.Hour, want: "yesterday"},
		{ago: 72 * time.Hour, want: "3 days ago"},
		{ago: 10 * 24 * time.Hour, want: "2024-03-05 12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestJoinErrors(t *testing.T) {
	err := model.ExpenseInput{Category: model.CategoryFood, Date: "2024-03-01"}.Validate()
	assert.Equal(t, model.ErrInvalidAmount.Error()+"; "+model.ErrEmptyDescription.Error(), joinErrors(err))
	assert.Equal(t, common.ErrNotFound.Error(), joinErrors(common.ErrNotFound))
}
