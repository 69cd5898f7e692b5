// Package tui implements the interactive spending dashboard.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/model"
	"github.com/Akash50142/expense-tracker/internal/service"
	"github.com/Akash50142/expense-tracker/internal/tui/themes"
)

// Source is the part of the engine the dashboard reads and mutates.
type Source interface {
	Report(opts engine.ReportOptions) *service.Report
	CategoryStats() []model.CategoryStat
	MonthOverMonthChange() float64
	DeleteExpense(ctx context.Context, id string) bool
}

// Tab identifies a dashboard view.
type Tab int

// Dashboard views, in tab order.
const (
	TabOverview Tab = iota
	TabExpenses
	TabCategories
	TabBudgets
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabExpenses:
		return "Expenses"
	case TabCategories:
		return "Categories"
	case TabBudgets:
		return "Budgets"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Model holds the dashboard state.
type Model struct {
	ctx           context.Context
	source        Source
	report        *service.Report
	theme         themes.Theme
	keymap        KeyMap
	help          help.Model
	table         table.Model
	bar           progress.Model
	status        string
	pendingDelete string
	stats         []model.CategoryStat
	config        Config
	change        float64
	tab           Tab
	width         int
	height        int
	ready         bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, source Source, cfg Config) Model {
	t := table.New(
		table.WithColumns(expenseColumns(cfg.Width)),
		table.WithFocused(true),
		table.WithHeight(tableHeight(cfg.Height)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cfg.Theme.Primary)
	styles.Selected = cfg.Theme.Selected
	t.SetStyles(styles)

	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:    ctx,
		source: source,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		table:  t,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		width:  cfg.Width,
		height: cfg.Height,
	}
}

func expenseColumns(width int) []table.Column {
	desc := max(width-12-12-18-14-10, 16)
	return []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Date", Width: 12},
		{Title: "Description", Width: desc},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 14},
	}
}

func tableHeight(height int) int {
	return max(height-8, 5)
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	source, opts := m.source, m.config.ReportOptions
	return func() tea.Msg {
		return dataLoadedMsg{
			report: source.Report(opts),
			stats:  source.CategoryStats(),
			change: source.MonthOverMonthChange(),
		}
	}
}

func (m Model) deleteExpense(id string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		return expenseDeletedMsg{id: id, deleted: source.DeleteExpense(ctx, id)}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(expenseColumns(msg.Width))
		m.table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case dataLoadedMsg:
		m.report = msg.report
		m.stats = msg.stats
		m.change = msg.change
		m.ready = true
		m.table.SetRows(expenseRows(msg.report.Expenses))
		return m, nil

	case expenseDeletedMsg:
		if msg.deleted {
			m.status = "Deleted " + msg.id
		} else {
			m.status = "Expense " + msg.id + " no longer exists"
		}
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != "" {
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			id := m.pendingDelete
			m.pendingDelete = ""
			return m, m.deleteExpense(id)
		case key.Matches(msg, m.keymap.Cancel):
			m.pendingDelete = ""
			m.status = "Delete canceled"
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		m.status = ""
		return m, m.load()
	case key.Matches(msg, m.keymap.Delete) && m.tab == TabExpenses:
		if row := m.table.SelectedRow(); row != nil {
			m.pendingDelete = row[0]
		}
		return m, nil
	}

	if m.tab == TabExpenses {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func expenseRows(expenses []model.Expense) []table.Row {
	rows := make([]table.Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, table.Row{
			e.ID,
			e.Date,
			e.Description,
			e.Category.Label(),
			cli.FormatCurrency(e.Amount),
		})
	}
	return rows
}
