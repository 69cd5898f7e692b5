package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/model"
)

var errBadRequest = errors.New("bad request")

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := parseFilter(query.Get("category"), query.Get("from"), query.Get("to"), query.Get("min"), query.Get("max"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	field, order := engine.SortByDate, engine.SortDesc
	if v := query.Get("sort"); v != "" {
		if field, err = engine.ParseSortField(v); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if v := query.Get("order"); v != "" {
		if order, err = engine.ParseSortOrder(v); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	match, err := common.CompileMatcher(query.Get("match"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid match pattern: %w", errBadRequest, err))
		return
	}

	expenses := s.engine.FilterExpenses(filter)
	matched := expenses[:0]
	for _, e := range expenses {
		if match(e.Description) {
			matched = append(matched, e)
		}
	}

	writeJSON(w, http.StatusOK, toExpensesJSON(engine.SortExpenses(matched, field, order)))
}

func (s *Server) handleRecentExpenses(w http.ResponseWriter, r *http.Request) {
	n := engine.DefaultRecentCount
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := cast.ToIntE(v)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, toExpensesJSON(s.engine.RecentExpenses(n)))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, ok := s.engine.Expense(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, common.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	in := req.input()
	if err := in.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}

	expense := s.engine.AddExpense(r.Context(), in)
	s.logger.Info("expense created", "id", expense.ID, "category", expense.Category)
	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	in := req.input()
	if err := in.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}

	expense := in.WithID(chi.URLParam(r, "id"))
	if !s.engine.UpdateExpense(r.Context(), expense) {
		s.writeError(w, http.StatusNotFound, common.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !s.engine.DeleteExpense(r.Context(), chi.URLParam(r, "id")) {
		s.writeError(w, http.StatusNotFound, common.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toBudgetsJSON(s.engine.BudgetStatuses(s.reportOpts.Thresholds)))
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	category, err := model.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	budget := model.Budget{Category: category, Limit: req.Limit}
	if err := budget.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}

	s.engine.SetBudget(r.Context(), budget)
	for _, status := range s.engine.BudgetStatuses(s.reportOpts.Thresholds) {
		if status.Budget.Category == category {
			writeJSON(w, http.StatusOK, toBudgetsJSON([]model.BudgetStatus{status})[0])
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBudget(w http.ResponseWriter, r *http.Request) {
	category, err := model.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.engine.RemoveBudget(r.Context(), category) {
		s.writeError(w, http.StatusNotFound, common.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCategoriesJSON(s.engine.CategoryStats()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	opts := s.reportOpts
	query := r.URL.Query()

	for key, dst := range map[string]*int{"months": &opts.Months, "weeks": &opts.Weeks} {
		v := query.Get(key)
		if v == "" {
			continue
		}
		n, err := cast.ToIntE(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, key))
			return
		}
		*dst = n
	}

	writeJSON(w, http.StatusOK, toSummaryJSON(s.engine.Report(opts), engine.DefaultRecentCount))
}

// parseFilter builds an expense filter from query parameters. Categories
// are comma separated; amounts accept any numeric form cast understands.
func parseFilter(categories, from, to, minAmount, maxAmount string) (model.ExpenseFilter, error) {
	var filter model.ExpenseFilter

	for _, raw := range strings.Split(categories, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		c, err := model.ParseCategory(raw)
		if err != nil {
			return filter, err
		}
		filter.Categories = append(filter.Categories, c)
	}

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := model.ParseDate(d); err != nil {
			return filter, err
		}
	}
	filter.StartDate = strings.TrimSpace(from)
	filter.EndDate = strings.TrimSpace(to)

	var err error
	if filter.MinAmount, err = parseAmount("min", minAmount); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = parseAmount("max", maxAmount); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseAmount(name, raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
	}
	return &v, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

// writeValidationError reports every joined validation failure separately.
func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	resp := errorJSON{Error: "validation failed"}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			resp.Details = append(resp.Details, e.Error())
		}
	} else {
		resp.Details = []string{err.Error()}
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
