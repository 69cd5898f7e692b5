// Package testutil provides shared test fixtures for the spendwise packages.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/storage"
)

// FixedNow is the clock used by test engines unless overridden:
// Friday 15 March 2024, mid-morning UTC.
var FixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

// TestEngine is an engine wired to an in-memory store.
type TestEngine struct {
	*engine.Engine
	KV    *storage.MemoryKV
	Store *storage.Store
	now   time.Time
	t     *testing.T
}

// TestEngineOptions configures SetupTestEngine.
type TestEngineOptions struct {
	Now      time.Time
	Expenses []model.ExpenseInput
	Budgets  []model.Budget
}

// SetupTestEngine creates an engine on a fresh MemoryKV with a fixed clock
// and sequential ids ("exp-1", "exp-2", ...), then seeds it.
func SetupTestEngine(t *testing.T, opts TestEngineOptions) *TestEngine {
	t.Helper()

	now := opts.Now
	if now.IsZero() {
		now = FixedNow
	}

	kv := storage.NewMemoryKV()
	store := storage.NewStore(kv)
	ctx := context.Background()

	eng := engine.New(ctx, store,
		engine.WithClock(func() time.Time { return now }),
		engine.WithIDGenerator(SequentialIDs("exp")),
	)

	for _, in := range opts.Expenses {
		eng.AddExpense(ctx, in)
	}
	for _, b := range opts.Budgets {
		eng.SetBudget(ctx, b)
	}

	t.Cleanup(func() {
		_ = kv.Close()
	})

	return &TestEngine{
		Engine: eng,
		KV:     kv,
		Store:  store,
		now:    now,
		t:      t,
	}
}

// Reopen builds a second engine over the same store, as a restart would.
func (te *TestEngine) Reopen() *engine.Engine {
	te.t.Helper()
	return engine.New(context.Background(), te.Store, engine.WithClock(func() time.Time { return te.now }))
}

// SequentialIDs returns a goroutine-safe id generator producing prefix-1,
// prefix-2, and so on.
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// Expense is shorthand for building an ExpenseInput in tests.
func Expense(amount float64, category model.Category, date, description string) model.ExpenseInput {
	return model.ExpenseInput{
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}
}
