package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/model"
)

func expensesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "exp"},
		Short:   "Record and browse expenses",
		Example: `  # Record an expense
  spendwise expenses add --amount 42.50 --category food --description "Groceries"

  # Record an expense interactively
  spendwise expenses add

  # Food and housing spending in February, largest first
  spendwise expenses list --category food,housing --from 2024-02-01 --to 2024-02-29 --sort amount

  # The five most recent expenses
  spendwise expenses recent`,
	}

	cmd.AddCommand(addExpenseCmd(opts))
	cmd.AddCommand(listExpensesCmd(opts))
	cmd.AddCommand(recentExpensesCmd(opts))
	cmd.AddCommand(updateExpenseCmd(opts))
	cmd.AddCommand(deleteExpenseCmd(opts))

	return cmd
}

func addExpenseCmd(opts *rootOptions) *cobra.Command {
	var in model.ExpenseInput
	var amount, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense. Without --amount the fields are asked for
interactively. The date defaults to today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			today := model.FormatDate(time.Now())

			if !cmd.Flags().Changed("amount") {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				prompted, err := prompter.PromptExpense(ctx, today)
				if err != nil {
					return err
				}
				in = prompted
			} else {
				parsedAmount, err := cli.ParseAmount(amount)
				if err != nil {
					return err
				}
				in.Amount = parsedAmount
				parsed, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				in.Category = parsed
				if in.Date == "" {
					in.Date = today
				}
			}
			in.Description = strings.TrimSpace(in.Description)

			if err := in.Validate(); err != nil {
				return common.NewUserError("Invalid expense: "+joinErrors(err), err)
			}

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			expense := a.engine.AddExpense(ctx, in)
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Recorded %s for %s on %s (%s)",
				cli.FormatCurrency(expense.Amount), expense.Category.Label(), expense.Date, expense.ID)))

			warnIfOverBudget(cmd, a, expense.Category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount spent, e.g. 42.50 or $1,200")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOther), "expense category")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date of the expense (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&in.Description, "description", "m", "", "what the money was spent on")

	return cmd
}

func listExpensesCmd(opts *rootOptions) *cobra.Command {
	var (
		categories []string
		from, to   string
		minAmount  float64
		maxAmount  float64
		sortField  string
		sortOrder  string
		match      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := model.ExpenseFilter{StartDate: from, EndDate: to}
			for _, raw := range categories {
				c, err := model.ParseCategory(raw)
				if err != nil {
					return err
				}
				filter.Categories = append(filter.Categories, c)
			}
			for _, d := range []string{from, to} {
				if d == "" {
					continue
				}
				if _, err := model.ParseDate(d); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("min") {
				filter.MinAmount = &minAmount
			}
			if cmd.Flags().Changed("max") {
				filter.MaxAmount = &maxAmount
			}

			field, err := engine.ParseSortField(sortField)
			if err != nil {
				return err
			}
			order, err := engine.ParseSortOrder(sortOrder)
			if err != nil {
				return err
			}
			matches, err := common.CompileMatcher(match)
			if err != nil {
				return fmt.Errorf("invalid --match pattern: %w", err)
			}

			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var expenses []model.Expense
			for _, e := range a.engine.FilterExpenses(filter) {
				if matches(e.Description) {
					expenses = append(expenses, e)
				}
			}

			if len(expenses) == 0 {
				printLine(cmd, cli.FormatInfo("No expenses found."))
				return nil
			}

			var total float64
			for _, e := range expenses {
				total += e.Amount
			}

			printLine(cmd, cli.RenderExpenses(engine.SortExpenses(expenses, field, order)))
			printf(cmd, "%d expenses, %s total\n", len(expenses), cli.FormatCurrency(total))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only these categories (comma separated)")
	cmd.Flags().StringVar(&from, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&minAmount, "min", 0, "smallest amount")
	cmd.Flags().Float64Var(&maxAmount, "max", 0, "largest amount")
	cmd.Flags().StringVarP(&sortField, "sort", "s", string(engine.SortByDate), "sort by date, amount, category or description")
	cmd.Flags().StringVarP(&sortOrder, "order", "o", string(engine.SortDesc), "sort order (asc, desc)")
	cmd.Flags().StringVar(&match, "match", "", "regular expression the description must match")

	return cmd
}

func recentExpensesCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			n := count
			if !cmd.Flags().Changed("count") {
				n = a.cfg.Reports.RecentCount
			}

			recent := a.engine.RecentExpenses(n)
			if len(recent) == 0 {
				printLine(cmd, cli.FormatInfo("No expenses recorded yet."))
				return nil
			}
			printLine(cmd, cli.RenderExpenses(recent))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", engine.DefaultRecentCount, "how many expenses to show")
	return cmd
}

func updateExpenseCmd(opts *rootOptions) *cobra.Command {
	var (
		amount      string
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			expense, ok := a.engine.Expense(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("No expense with id %q", args[0]), common.ErrNotFound)
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				if expense.Amount, err = cli.ParseAmount(amount); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				if expense.Category, err = model.ParseCategory(category); err != nil {
					return err
				}
			}
			if flags.Changed("date") {
				expense.Date = date
			}
			if flags.Changed("description") {
				expense.Description = strings.TrimSpace(description)
			}

			if err := expense.Input().Validate(); err != nil {
				return common.NewUserError("Invalid expense: "+joinErrors(err), err)
			}

			a.engine.UpdateExpense(ctx, expense)
			printLine(cmd, cli.FormatSuccess("Updated expense " + expense.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")

	return cmd
}

func deleteExpenseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete expenses",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var missing []string
			for _, id := range args {
				if a.engine.DeleteExpense(ctx, id) {
					printLine(cmd, cli.FormatSuccess("Deleted expense " + id))
				} else {
					missing = append(missing, id)
				}
			}

			if len(missing) > 0 {
				return common.NewUserError("No expense with id "+strings.Join(missing, ", "), common.ErrNotFound)
			}
			return nil
		},
	}
}

// warnIfOverBudget prints the budget status of category when it is past
// the warning threshold.
func warnIfOverBudget(cmd *cobra.Command, a *app, category model.Category) {
	for _, status := range a.engine.BudgetStatuses(a.reportOptions().Thresholds) {
		if status.Budget.Category != category || status.Level == model.BudgetLevelOK {
			continue
		}
		msg := fmt.Sprintf("%s budget is %s used (%s left)",
			category.Label(), cli.FormatPercentage(status.Percentage), cli.FormatCurrency(status.Remaining))
		printLine(cmd, cli.LevelStyle(status.Level).Render(cli.WarningIcon + " " + msg))
	}
}

// joinErrors flattens joined validation errors into one line.
func joinErrors(err error) string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return err.Error()
	}
	parts := make([]string, 0, len(joined.Unwrap()))
	for _, e := range joined.Unwrap() {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
