// Package engine implements the expense and budget aggregation engine.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

// maxIDAttempts bounds how often a colliding id is regenerated before
// falling back to a random UUID.
const maxIDAttempts = 8

// Engine owns the canonical expense and budget collections. It is the only
// writer of both and persists each collection after every change.
type Engine struct {
	store    service.Storage
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
	expenses []model.Expense
	budgets  []model.Budget
	mu       sync.RWMutex
}

// Config holds configuration options for the engine.
type Config struct {
	Clock  func() time.Time
	NewID  func() string
	Logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Config)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Clock:  time.Now,
		NewID:  uuid.NewString,
		Logger: slog.Default(),
	}
}

// WithClock sets the source of "now" used by time-windowed queries.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithIDGenerator sets the expense id generator.
func WithIDGenerator(gen func() string) Option {
	return func(c *Config) {
		c.NewID = gen
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates an engine and loads both collections from store.
func New(ctx context.Context, store service.Storage, opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	e := &Engine{
		store:  store,
		now:    cfg.Clock,
		newID:  cfg.NewID,
		logger: cfg.Logger,
	}
	e.load(ctx)
	return e
}

// Reload replaces the in-memory collections with what the store holds.
func (e *Engine) Reload(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(ctx)
}

// load must be called with the write lock held or before the engine is shared.
func (e *Engine) load(ctx context.Context) {
	e.expenses = e.store.LoadExpenses(ctx)
	e.budgets = uniqueBudgets(e.store.LoadBudgets(ctx))
	if e.expenses == nil {
		e.expenses = []model.Expense{}
	}
	if e.budgets == nil {
		e.budgets = []model.Budget{}
	}
	e.logger.Debug("loaded collections", "expenses", len(e.expenses), "budgets", len(e.budgets))
}

// AddExpense stores a new expense with a fresh id and returns it.
// The description is trimmed; other fields are stored as given.
func (e *Engine) AddExpense(ctx context.Context, in model.ExpenseInput) model.Expense {
	e.mu.Lock()
	defer e.mu.Unlock()

	in.Description = strings.TrimSpace(in.Description)
	expense := in.WithID(e.uniqueID())
	e.expenses = append(e.expenses, expense)

	e.logger.Info("added expense", "id", expense.ID, "category", expense.Category, "amount", expense.Amount)
	e.persistExpenses(ctx)
	return expense
}

// UpdateExpense replaces the expense with the same id. It reports false,
// leaving everything unchanged, when no such expense exists.
func (e *Engine) UpdateExpense(ctx context.Context, expense model.Expense) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfExpense(expense.ID)
	if idx < 0 {
		e.logger.Debug("update of unknown expense ignored", "id", expense.ID)
		return false
	}
	if e.expenses[idx] == expense {
		return true
	}

	e.expenses[idx] = expense
	e.logger.Info("updated expense", "id", expense.ID)
	e.persistExpenses(ctx)
	return true
}

// DeleteExpense removes the expense with the given id and reports whether
// it existed.
func (e *Engine) DeleteExpense(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfExpense(id)
	if idx < 0 {
		return false
	}

	e.expenses = append(e.expenses[:idx:idx], e.expenses[idx+1:]...)
	e.logger.Info("deleted expense", "id", id)
	e.persistExpenses(ctx)
	return true
}

// SetBudget inserts the budget or replaces the limit of the existing budget
// for the same category.
func (e *Engine) SetBudget(ctx context.Context, budget model.Budget) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfBudget(budget.Category)
	switch {
	case idx < 0:
		e.budgets = append(e.budgets, budget)
	case e.budgets[idx] == budget:
		return
	default:
		e.budgets[idx] = budget
	}

	e.logger.Info("set budget", "category", budget.Category, "limit", budget.Limit)
	e.persistBudgets(ctx)
}

// RemoveBudget deletes the budget for category and reports whether one existed.
func (e *Engine) RemoveBudget(ctx context.Context, category model.Category) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfBudget(category)
	if idx < 0 {
		return false
	}

	e.budgets = append(e.budgets[:idx:idx], e.budgets[idx+1:]...)
	e.logger.Info("removed budget", "category", category)
	e.persistBudgets(ctx)
	return true
}

// ClearAll removes both stored records and reloads, leaving the engine in
// the state a fresh start would see. Records that failed to clear are
// reloaded as they are.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.store.Clear(ctx)
	if err != nil {
		e.logger.Error("failed to clear stored data", "error", err)
	}
	e.load(ctx)
	return err
}

func (e *Engine) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := e.newID()
		if id != "" && e.indexOfExpense(id) < 0 {
			return id
		}
	}
	id := uuid.NewString()
	for e.indexOfExpense(id) >= 0 {
		id = uuid.NewString()
	}
	return id
}

func (e *Engine) indexOfExpense(id string) int {
	for i := range e.expenses {
		if e.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) indexOfBudget(category model.Category) int {
	for i := range e.budgets {
		if e.budgets[i].Category == category {
			return i
		}
	}
	return -1
}

// uniqueBudgets keeps one budget per category: the first position and the
// last limit seen.
func uniqueBudgets(budgets []model.Budget) []model.Budget {
	out := budgets[:0:0]
	index := make(map[model.Category]int, len(budgets))
	for _, b := range budgets {
		if i, dup := index[b.Category]; dup {
			out[i] = b
			continue
		}
		index[b.Category] = len(out)
		out = append(out, b)
	}
	return out
}

// Persistence failures leave the in-memory change in place; they are logged
// and not reported to the caller.
func (e *Engine) persistExpenses(ctx context.Context) {
	if err := e.store.SaveExpenses(ctx, e.expenses); err != nil {
		e.logger.Error("failed to persist expenses", "count", len(e.expenses), "error", err)
	}
}

func (e *Engine) persistBudgets(ctx context.Context) {
	if err := e.store.SaveBudgets(ctx, e.budgets); err != nil {
		e.logger.Error("failed to persist budgets", "count", len(e.budgets), "error", err)
	}
}
