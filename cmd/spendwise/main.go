package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/config"
)

var version = "dev"

// rootOptions is the state shared by every command of one invocation.
type rootOptions struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "spendwise",
		Short: "💰 Personal expense and budget tracker",
		Long: `spendwise records your expenses, tracks them against monthly budgets,
and turns them into summaries, trends and reports.

Expenses live in a local SQLite database. Bank statements can be imported
from OFX/QFX files and reports can be published to Google Sheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $HOME/.config/spendwise/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().String("db", "", "database path (overrides database.path)")

	_ = opts.v.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = opts.v.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))
	_ = opts.v.BindPFlag("database.path", cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(expensesCmd(opts))
	cmd.AddCommand(budgetsCmd(opts))
	cmd.AddCommand(summaryCmd(opts))
	cmd.AddCommand(categoriesCmd(opts))
	cmd.AddCommand(resetCmd(opts))
	cmd.AddCommand(backupCmd(opts))
	cmd.AddCommand(importCmd(opts))
	cmd.AddCommand(exportCmd(opts))
	cmd.AddCommand(authCmd(opts))
	cmd.AddCommand(dashboardCmd(opts))
	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func (o *rootOptions) initConfig() error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}
	if err := config.Init(o.v, o.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	level, err := common.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("configuration loaded",
		"config_file", o.v.ConfigFileUsed(),
		"backend", cfg.Database.Backend,
		"database", cfg.Database.Path)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			printf(cmd, "spendwise %s\n", version)
		},
	}
}
