package tui

import (
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
)

// dataLoadedMsg carries a fresh snapshot of the engine.
type dataLoadedMsg struct {
	report *service.Report
	stats  []model.CategoryStat
	change float64
}

// expenseDeletedMsg reports the outcome of a delete.
type expenseDeletedMsg struct {
	id      string
	deleted bool
}
