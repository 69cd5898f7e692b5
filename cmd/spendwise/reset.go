package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
)

func resetCmd(opts *rootOptions) *cobra.Command {
	var force, noBackup bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all expenses and budgets",
		Long: `Reset removes every expense and budget.

This is a destructive operation. Unless --no-backup is given, an automatic
backup is taken first and can be restored with 'spendwise backup restore'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			expenses, budgets := len(a.engine.Expenses()), len(a.engine.Budgets())
			if expenses == 0 && budgets == 0 {
				printLine(cmd, cli.FormatInfo("Nothing to reset."))
				return nil
			}

			if !force {
				printf(cmd, "This will delete %d expenses and %d budgets.\n", expenses, budgets)
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := prompter.Confirm(ctx, "Are you sure you want to continue?")
				if err != nil {
					return err
				}
				if !ok {
					printLine(cmd, "Reset canceled.")
					return nil
				}
			}

			if !noBackup && a.sqlite != nil {
				manager, err := a.backups()
				if err != nil {
					return err
				}
				meta, err := manager.AutoBackup(ctx, "reset")
				if err != nil {
					return fmt.Errorf("refusing to reset without a backup: %w", err)
				}
				printLine(cmd, cli.FormatInfo("Saved backup "+meta.ID))
			}

			if err := a.engine.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}
			slog.Info("reset complete", "expenses", expenses, "budgets", budgets)

			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Deleted %d expenses and %d budgets", expenses, budgets)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not take a backup first")

	return cmd
}
