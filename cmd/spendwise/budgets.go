package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/model"
)

func budgetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Manage monthly category budgets",
		Example: `  # Allow $600 a month for food
  spendwise budgets set food 600

  # Show spending against every budget
  spendwise budgets list

  # Stop tracking a budget
  spendwise budgets remove food`,
	}

	cmd.AddCommand(setBudgetCmd(opts))
	cmd.AddCommand(removeBudgetCmd(opts))
	cmd.AddCommand(listBudgetsCmd(opts))

	return cmd
}

func setBudgetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Create or replace a category budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}
			limit, err := cli.ParseAmount(args[1])
			if err != nil {
				return err
			}

			budget := model.Budget{Category: category, Limit: limit}
			if err := budget.Validate(); err != nil {
				return common.NewUserError("Invalid budget: "+err.Error(), err)
			}

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			a.engine.SetBudget(ctx, budget)
			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("%s budget set to %s",
				category.Label(), cli.FormatCurrency(limit))))

			warnIfOverBudget(cmd, a, category)
			return nil
		},
	}
}

func removeBudgetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <category>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a category budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.engine.RemoveBudget(ctx, category) {
				printLine(cmd, cli.FormatInfo(category.Label()+" has no budget."))
				return nil
			}
			printLine(cmd, cli.FormatSuccess("Removed the "+category.Label()+" budget"))
			return nil
		},
	}
}

func listBudgetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "status"},
		Short:   "Show spending against every budget",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			statuses := a.engine.BudgetStatuses(a.reportOptions().Thresholds)
			if len(statuses) == 0 {
				printLine(cmd, cli.FormatInfo("No budgets set. Add one with 'spendwise budgets set <category> <limit>'."))
				return nil
			}

			printLine(cmd, cli.FormatTitle("Budgets"))
			printLine(cmd, cli.RenderBudgets(statuses))
			return nil
		},
	}
}
