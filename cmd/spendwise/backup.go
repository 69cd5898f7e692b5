package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/storage"
)

func backupCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Aliases: []string{"backups"},
		Short:   "Manage database backups",
		Long: `Create, list, restore, and delete database backups.

Backups are copies of the SQLite database kept in a "backups" directory
next to it. Destructive commands take an automatic backup first; only the
most recent automatic backups are kept.`,
		Example: `  # Back up before a big import
  spendwise backup create --tag pre-import

  # List all backups
  spendwise backup list

  # Roll back
  spendwise backup restore pre-import`,
	}

	cmd.AddCommand(createBackupCmd(opts))
	cmd.AddCommand(listBackupsCmd(opts))
	cmd.AddCommand(restoreBackupCmd(opts))
	cmd.AddCommand(deleteBackupCmd(opts))

	return cmd
}

func createBackupCmd(opts *rootOptions) *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			manager, err := a.backups()
			if err != nil {
				return err
			}

			meta, err := manager.Create(ctx, tag, description)
			if err != nil {
				return fmt.Errorf("failed to create backup: %w", err)
			}

			printf(cmd, "%s Created backup %s (%s, %d expenses, %d budgets)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(meta.ID),
				formatFileSize(meta.FileSize),
				meta.Expenses,
				meta.Budgets)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "backup name (timestamped if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the backup")

	return cmd
}

func listBackupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all backups",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			manager, err := a.backups()
			if err != nil {
				return err
			}

			backups, err := manager.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list backups: %w", err)
			}
			if len(backups) == 0 {
				printLine(cmd, cli.SubtleStyle.Render("No backups found."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			header := []string{"NAME", "CREATED", "SIZE", "EXPENSES", "BUDGETS", "TYPE"}
			for i, h := range header {
				header[i] = cli.TableHeaderStyle.Render(h)
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))

			now := time.Now()
			for _, b := range backups {
				kind := "manual"
				if b.IsAuto {
					kind = "auto"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					cli.InfoStyle.Render(b.ID),
					formatRelativeTime(b.CreatedAt, now),
					formatFileSize(b.FileSize),
					b.Expenses,
					b.Budgets,
					cli.SubtleStyle.Render(kind))
			}
			return w.Flush()
		},
	}
}

func restoreBackupCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			manager, err := a.backups()
			if err != nil {
				return err
			}

			if !force {
				printf(cmd, "%s This will replace your current data (%d expenses, %d budgets) with backup %s.\n",
					cli.WarningStyle.Render(cli.WarningIcon),
					len(a.engine.Expenses()), len(a.engine.Budgets()),
					cli.InfoStyle.Render(id))
				ok, err := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(ctx, "Continue?")
				if err != nil {
					return err
				}
				if !ok {
					printLine(cmd, cli.SubtleStyle.Render("Restore canceled."))
					return nil
				}
			}

			if err := manager.Restore(ctx, id); err != nil {
				if errors.Is(err, storage.ErrBackupNotFound) {
					return common.NewUserError(fmt.Sprintf("No backup named %q", id), err)
				}
				return fmt.Errorf("failed to restore backup: %w", err)
			}

			printf(cmd, "%s Restored from backup %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func deleteBackupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <backup-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a backup",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			manager, err := a.backups()
			if err != nil {
				return err
			}

			if err := manager.Delete(ctx, args[0]); err != nil {
				if errors.Is(err, storage.ErrBackupNotFound) {
					return common.NewUserError(fmt.Sprintf("No backup named %q", args[0]), err)
				}
				return fmt.Errorf("failed to delete backup: %w", err)
			}

			printf(cmd, "%s Deleted backup %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(args[0]))
			return nil
		},
	}
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "1 hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
