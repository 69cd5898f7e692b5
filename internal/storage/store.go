package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

// Record keys.
const (
	ExpensesKey = "spendwise_expenses"
	BudgetsKey  = "spendwise_budgets"
)

var _ service.Storage = (*Store)(nil)

// Store persists the expense and budget collections as JSON documents
// under two independent keys of a KeyValueStore.
type Store struct {
	kv KeyValueStore
}

// NewStore wraps kv.
func NewStore(kv KeyValueStore) *Store {
	return &Store{kv: kv}
}

type expenseRecord struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type budgetRecord struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// LoadExpenses returns the persisted expenses, or an empty slice when the
// record is missing or unreadable.
func (s *Store) LoadExpenses(ctx context.Context) []model.Expense {
	objects := s.loadObjects(ctx, ExpensesKey)
	expenses := make([]model.Expense, 0, len(objects))
	for _, obj := range objects {
		expenses = append(expenses, model.Expense{
			ID:          cast.ToString(obj["id"]),
			Amount:      cast.ToFloat64(obj["amount"]),
			Category:    model.Category(cast.ToString(obj["category"])),
			Date:        cast.ToString(obj["date"]),
			Description: cast.ToString(obj["description"]),
		})
	}
	return expenses
}

// LoadBudgets returns the persisted budgets, or an empty slice when the
// record is missing or unreadable. A category stored more than once keeps
// its first position and its last limit.
func (s *Store) LoadBudgets(ctx context.Context) []model.Budget {
	objects := s.loadObjects(ctx, BudgetsKey)
	budgets := make([]model.Budget, 0, len(objects))
	index := make(map[model.Category]int, len(objects))
	for _, obj := range objects {
		b := model.Budget{
			Category: model.Category(cast.ToString(obj["category"])),
			Limit:    cast.ToFloat64(obj["limit"]),
		}
		if i, dup := index[b.Category]; dup {
			slog.Warn("collapsing duplicate budget", "category", b.Category)
			budgets[i] = b
			continue
		}
		index[b.Category] = len(budgets)
		budgets = append(budgets, b)
	}
	return budgets
}

// SaveExpenses overwrites the expense record.
func (s *Store) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	records := make([]expenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = expenseRecord{
			ID:          e.ID,
			Amount:      e.Amount,
			Category:    string(e.Category),
			Date:        e.Date,
			Description: e.Description,
		}
	}
	return s.save(ctx, ExpensesKey, records)
}

// SaveBudgets overwrites the budget record.
func (s *Store) SaveBudgets(ctx context.Context, budgets []model.Budget) error {
	records := make([]budgetRecord, len(budgets))
	for i, b := range budgets {
		records[i] = budgetRecord{Category: string(b.Category), Limit: b.Limit}
	}
	return s.save(ctx, BudgetsKey, records)
}

// Clear removes both records. Both removals are attempted.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{ExpensesKey, BudgetsKey} {
		if err := s.kv.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.Info("cleared stored data")
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	slog.Debug("saved record", "key", key, "bytes", len(data))
	return nil
}

// loadObjects reads key and decodes it as a JSON array of objects.
// Array elements that are not objects are skipped.
func (s *Store) loadObjects(ctx context.Context, key string) []map[string]any {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.Error("failed to read stored record", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	objects, err := decodeObjects(raw)
	if err != nil {
		slog.Error("discarding unreadable record", "key", key, "error", err)
		return nil
	}
	return objects
}

func decodeObjects(raw string) ([]map[string]any, error) {
	var elems []any
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	objects := make([]map[string]any, 0, len(elems))
	for i, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			slog.Warn("skipping malformed element", "index", i)
			continue
		}
		objects = append(objects, obj)
	}
	return objects, nil
}
