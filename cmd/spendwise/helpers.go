package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Akash50142/expense-tracker/internal/config"
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/storage"
)

var errMemoryBackend = errors.New("the memory backend keeps no files; backups need the sqlite backend")

// app bundles the store and engine opened for one command.
type app struct {
	cfg    *config.Config
	kv     storage.KeyValueStore
	sqlite *storage.SQLiteKV
	engine *engine.Engine
}

// openApp opens the configured backend, migrating SQLite databases, and
// loads the engine from it.
func (o *rootOptions) openApp(ctx context.Context) (*app, error) {
	a := &app{cfg: o.cfg}

	switch o.cfg.Database.Backend {
	case config.BackendMemory:
		a.kv = storage.NewMemoryKV()
	default:
		kv, err := storage.NewSQLiteKV(o.cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		if err := kv.Migrate(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.kv = kv
		a.sqlite = kv
	}

	a.engine = engine.New(ctx, storage.NewStore(a.kv), engine.WithLogger(slog.Default()))
	return a, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

func (a *app) reportOptions() engine.ReportOptions {
	return engine.ReportOptions{
		Months: a.cfg.Reports.Months,
		Weeks:  a.cfg.Reports.Weeks,
		Thresholds: engine.Thresholds{
			Warning: a.cfg.Reports.WarningThreshold,
			Danger:  a.cfg.Reports.DangerThreshold,
		},
	}
}

func (a *app) backups() (*storage.BackupManager, error) {
	if a.sqlite == nil {
		return nil, errMemoryBackend
	}
	return storage.NewBackupManager(a.sqlite)
}

func printLine(cmd *cobra.Command, a ...any) {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), a...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func printf(cmd *cobra.Command, format string, a ...any) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, a...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
