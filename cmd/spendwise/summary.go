package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

func summaryCmd(opts *rootOptions) *cobra.Command {
	var months, weeks int

	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"report"},
		Short:   "Show totals, trends and budget status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			reportOpts := a.reportOptions()
			if cmd.Flags().Changed("months") {
				reportOpts.Months = months
			}
			if cmd.Flags().Changed("weeks") {
				reportOpts.Weeks = weeks
			}
			if reportOpts.Months <= 0 || reportOpts.Weeks <= 0 {
				return fmt.Errorf("--months and --weeks must be positive")
			}

			report := a.engine.Report(reportOpts)
			printLine(cmd, renderSummary(report, a.engine.MonthOverMonthChange(), reportOpts.Months))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "months in the monthly trend (default from config)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "weeks in the weekly trend (default from config)")

	return cmd
}

func renderSummary(report *service.Report, change float64, months int) string {
	if report.ExpenseCount == 0 {
		return cli.FormatInfo("No expenses recorded yet. Add one with 'spendwise expenses add'.")
	}

	top := "-"
	if report.TopCategory != nil {
		top = cli.FormatCategory(*report.TopCategory)
	}

	overview := strings.Join([]string{
		fmt.Sprintf("Total spent:      %s", cli.BoldStyle.Render(cli.FormatCurrency(report.TotalExpenses))),
		fmt.Sprintf("Monthly average:  %s (last %d months)", cli.FormatCurrency(report.AverageMonthly), months),
		fmt.Sprintf("vs last month:    %s", cli.FormatChange(change)),
		fmt.Sprintf("Expenses:         %d", report.ExpenseCount),
		fmt.Sprintf("Top category:     %s", top),
	}, "\n")

	sections := []string{
		cli.RenderBox(cli.WalletIcon+" Spending Overview", overview),
		cli.FormatTitle("Monthly Trend"),
		cli.RenderMonthly(report.Monthly),
		cli.FormatTitle("Weekly Trend"),
		cli.RenderWeekly(report.Weekly),
		cli.FormatTitle("By Category"),
		cli.RenderCategorySummary(report.Categories),
	}
	if len(report.Budgets) > 0 {
		sections = append(sections, cli.FormatTitle("Budgets"), cli.RenderBudgets(report.Budgets))
	}

	return strings.Join(sections, "\n")
}

func categoriesCmd(opts *rootOptions) *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show spending and budgets for every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if namesOnly {
				for _, opt := range model.CategoryOptions() {
					printf(cmd, "%-15s %s\n", opt.Value, opt.Label)
				}
				return nil
			}

			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			printLine(cmd, cli.FormatTitle("Categories"))
			printLine(cmd, cli.RenderCategoryStats(a.engine.CategoryStats()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "only list category values and labels")
	return cmd
}
