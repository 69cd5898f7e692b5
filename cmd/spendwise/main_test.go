package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/storage"
)

// testEnv isolates a command run: its own HOME, database file and no
// dotenv file.
type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SPENDWISE_DATABASE_PATH", filepath.Join(dir, "data", "spendwise.db"))
	t.Setenv("SPENDWISE_LOGGING_LEVEL", "error")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &testEnv{t: t, dir: dir, dbPath: filepath.Join(dir, "data", "spendwise.db")}
}

// run executes the CLI with args, feeding stdin to prompts.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(e.dir, "missing.env")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

// expenses reads the persisted expenses straight from the database.
func (e *testEnv) expenses() []model.Expense {
	e.t.Helper()

	kv, err := storage.NewSQLiteKV(e.dbPath)
	require.NoError(e.t, err)
	defer func() { _ = kv.Close() }()

	return storage.NewStore(kv).LoadExpenses(context.Background())
}
