package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akash50142/expense-tracker/internal/cli"
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/tui/themes"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.theme.Subtitle.Render("Loading expenses...")
	}

	var body string
	switch m.tab {
	case TabExpenses:
		body = m.expensesView()
	case TabCategories:
		body = m.categoriesView()
	case TabBudgets:
		body = m.budgetsView()
	default:
		body = m.overviewView()
	}

	sections := []string{m.tabsView(), body, m.footerView()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, int(tabCount))
	for t := TabOverview; t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			tabs = append(tabs, m.theme.Selected.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) footerView() string {
	var lines []string
	if m.pendingDelete != "" {
		lines = append(lines, m.theme.StatusWarning.Render(fmt.Sprintf("Delete expense %s? (y/n)", m.pendingDelete)))
	} else if m.status != "" {
		lines = append(lines, m.theme.StatusInfo.Render(m.status))
	}
	if m.config.ShowHelp {
		lines = append(lines, m.help.View(m.keymap))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m Model) overviewView() string {
	r := m.report
	if r.ExpenseCount == 0 {
		return m.theme.Subtitle.Render("No expenses yet. Add one with: spendwise expenses add")
	}

	top := "-"
	if r.TopCategory != nil {
		top = themes.CategoryIcon(*r.TopCategory) + " " + r.TopCategory.Label()
	}

	changeStyle := m.theme.StatusSuccess
	if m.change > 0 {
		changeStyle = m.theme.StatusError
	}

	summary := strings.Join([]string{
		m.theme.Bold.Render("Total spent:     ") + cli.FormatCurrency(r.TotalExpenses),
		m.theme.Bold.Render("Monthly average: ") + cli.FormatCurrency(r.AverageMonthly),
		m.theme.Bold.Render("vs last month:   ") + changeStyle.Render(cli.FormatChange(m.change)),
		m.theme.Bold.Render("Top category:    ") + top,
		m.theme.Bold.Render("Expenses:        ") + fmt.Sprint(r.ExpenseCount),
	}, "\n")

	var trend strings.Builder
	peak := 0.0
	for _, mo := range r.Monthly {
		peak = max(peak, mo.Total)
	}
	for _, mo := range r.Monthly {
		frac := 0.0
		if peak > 0 {
			frac = mo.Total / peak
		}
		fmt.Fprintf(&trend, "%-9s %s %s\n", cli.FormatMonth(mo.Month), m.theme.ProgressBar.Render(cli.Bar(frac, 24)), cli.FormatCurrency(mo.Total))
	}
	for _, wk := range r.Weekly {
		fmt.Fprintf(&trend, "%-9s %s\n", wk.Label, cli.FormatCurrency(wk.Total))
	}

	var recent strings.Builder
	for _, e := range r.Expenses[:min(len(r.Expenses), engine.DefaultRecentCount)] {
		fmt.Fprintf(&recent, "%s  %-28s %s\n", cli.FormatDate(e.Date), truncate(e.Description, 28), cli.FormatCurrency(e.Amount))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.RoundedBox.Render(summary),
		m.theme.Title.Render("Trend"),
		strings.TrimRight(trend.String(), "\n"),
		"",
		m.theme.Title.Render("Recent"),
		strings.TrimRight(recent.String(), "\n"),
	)
}

func (m Model) expensesView() string {
	if len(m.table.Rows()) == 0 {
		return m.theme.Subtitle.Render("No expenses recorded.")
	}
	return m.theme.BorderedBox.UnsetPadding().Render(m.table.View())
}

func (m Model) categoriesView() string {
	var b strings.Builder
	for _, s := range m.stats {
		budget := ""
		if s.Limit != nil && s.Remaining != nil {
			budget = fmt.Sprintf("  budget %s, %s left", cli.FormatCurrency(*s.Limit), cli.FormatCurrency(*s.Remaining))
		}
		line := fmt.Sprintf("%s %-22s %12s %5s%s",
			themes.CategoryIcon(s.Category),
			s.Category.Label(),
			cli.FormatCurrency(s.Total),
			cli.FormatPercentage(s.Percentage),
			budget)
		if s.Total == 0 {
			line = lipgloss.NewStyle().Foreground(m.theme.Muted).Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) budgetsView() string {
	if len(m.report.Budgets) == 0 {
		return m.theme.Subtitle.Render("No budgets set. Add one with: spendwise budgets set <category> <limit>")
	}

	var b strings.Builder
	for _, s := range m.report.Budgets {
		fmt.Fprintf(&b, "%-22s %s %s  %s of %s  %s\n",
			s.Budget.Category.Label(),
			m.bar.ViewAs(min(s.Percentage, 1)),
			cli.FormatPercentage(s.Percentage),
			cli.FormatCurrency(s.Spent),
			cli.FormatCurrency(s.Budget.Limit),
			m.theme.LevelStyle(s.Level).Render(string(s.Level)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
