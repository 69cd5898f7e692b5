package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/ofx"
)

func importCmd(opts *rootOptions) *cobra.Command {
	var (
		category string
		dryRun   bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import expenses from OFX/QFX bank statements",
		Long: `Import the debits of OFX or QFX (Quicken) statements exported from your bank.

Credits are skipped. Charges already recorded, or repeated across
overlapping statements, are imported only once. Imported expenses are filed
under import.default_category unless --category is given.`,
		Example: `  # Import a single statement
  spendwise import ~/Downloads/checking_jan_2024.qfx

  # Import every statement in a directory as food
  spendwise import ~/Downloads/card/*.qfx --category food

  # Preview without saving
  spendwise import ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			target := opts.cfg.Import.DefaultCategory
			if cmd.Flags().Changed("category") {
				if target, err = model.ParseCategory(category); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(out, "Import", "Expenses saved so far are kept.")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			slog.Info("importing statements", "file_count", len(files), "dry_run", dryRun)

			results, err := ofx.NewParser(target, slog.Default()).ParseFiles(ctx, files)
			if err != nil {
				return fmt.Errorf("failed to parse statements: %w", err)
			}

			var inputs []model.ExpenseInput
			skipped := 0
			for _, res := range results {
				accounts := "unknown account"
				if len(res.Accounts) > 0 {
					accounts = "account " + strings.Join(res.Accounts, ", ")
				}
				printf(cmd, "  %s %d expenses, %d credits skipped (%s)\n",
					cli.SubtleStyle.Render(filepath.Base(res.Source)+":"), len(res.Expenses), res.Skipped, accounts)
				inputs = append(inputs, res.Expenses...)
				skipped += res.Skipped
			}

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			fresh, duplicates := ofx.Dedupe(a.engine.Expenses(), inputs)

			valid := fresh[:0]
			for _, in := range fresh {
				if err := in.Validate(); err != nil {
					slog.Warn("skipping invalid transaction", "date", in.Date, "description", in.Description, "error", err)
					continue
				}
				valid = append(valid, in)
			}

			if len(valid) == 0 {
				printLine(cmd, cli.FormatInfo(fmt.Sprintf("Nothing new to import (%d duplicates).", duplicates)))
				return nil
			}

			if dryRun {
				preview := make([]model.Expense, 0, len(valid))
				for _, in := range valid {
					preview = append(preview, in.WithID("-"))
				}
				printLine(cmd, cli.RenderExpenses(preview))
				printLine(cmd, cli.FormatInfo(fmt.Sprintf("Dry run: %d expenses would be imported, %d duplicates skipped.", len(valid), duplicates)))
				return nil
			}

			if !noBackup && a.sqlite != nil {
				manager, err := a.backups()
				if err != nil {
					return err
				}
				if _, err := manager.AutoBackup(ctx, "import"); err != nil {
					return fmt.Errorf("refusing to import without a backup: %w", err)
				}
			}

			bar := cli.NewProgressBar(out, len(valid), "Importing")
			imported := 0
			for _, in := range valid {
				if ctx.Err() != nil {
					break
				}
				a.engine.AddExpense(ctx, in)
				imported++
				_ = bar.Add(1)
			}

			if handler.WasInterrupted() {
				return common.NewUserError(fmt.Sprintf("Import interrupted after %d of %d expenses", imported, len(valid)), ctx.Err())
			}

			printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses (%d duplicates, %d credits skipped)",
				imported, duplicates, skipped)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category for imported expenses (default from config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not take a backup first")

	return cmd
}

// expandFiles resolves glob patterns. Patterns matching nothing are kept
// when they name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("no files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrNoTransactions)
	}
	return files, nil
}
