// Package themes defines the color themes of the dashboard.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// Theme is the set of styles the dashboard renders with.
type Theme struct {
	Name string

	Primary lipgloss.Color
	Muted   lipgloss.Color

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	ProgressBar lipgloss.Style
	RoundedBox  lipgloss.Style
	BorderedBox lipgloss.Style

	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
}

// palette holds the raw colors a theme is derived from.
type palette struct {
	primary, onPrimary       string
	text, subtext, muted     string
	border                   string
	info, ok, warning, error string
}

func newTheme(name string, p palette) Theme {
	status := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	box := func(b lipgloss.Border) lipgloss.Style {
		return lipgloss.NewStyle().Border(b).BorderForeground(lipgloss.Color(p.border)).Padding(1, 2)
	}

	return Theme{
		Name:    name,
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.text)).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.subtext)).MarginBottom(1),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.text)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.onPrimary)).
			Bold(true).
			Padding(0, 1),
		ProgressBar: lipgloss.NewStyle().Foreground(lipgloss.Color(p.primary)),
		RoundedBox:  box(lipgloss.RoundedBorder()),
		BorderedBox: box(lipgloss.NormalBorder()),

		StatusInfo:    status(p.info),
		StatusSuccess: status(p.ok),
		StatusWarning: status(p.warning),
		StatusError:   status(p.error),
	}
}

// Default is the emerald theme used unless another is picked.
var Default = newTheme("default", palette{
	primary:   "#059669",
	onPrimary: "#fafafa",
	text:      "#fafafa",
	subtext:   "#a3a3a3",
	muted:     "#737373",
	border:    "#404040",
	info:      "#3b82f6",
	ok:        "#10b981",
	warning:   "#f59e0b",
	error:     "#ef4444",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	primary:   "#cba6f7",
	onPrimary: "#1e1e2e",
	text:      "#cdd6f4",
	subtext:   "#a6adc8",
	muted:     "#6c7086",
	border:    "#45475a",
	info:      "#89dceb",
	ok:        "#a6e3a1",
	warning:   "#f9e2af",
	error:     "#f38ba8",
})

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha", "mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// categoryIcons maps the icon references of the category registry to
// terminal glyphs.
var categoryIcons = map[string]string{
	"home":           "🏠",
	"car":            "🚗",
	"shopping-cart":  "🛒",
	"lightbulb":      "💡",
	"umbrella":       "☂️",
	"heart":          "❤️",
	"piggy-bank":     "🐷",
	"shirt":          "👕",
	"film":           "🎬",
	"graduation-cap": "🎓",
	"credit-card":    "💳",
	"help-circle":    "❔",
}

// CategoryIcon returns a glyph for a category.
func CategoryIcon(c model.Category) string {
	if info, ok := model.Lookup(c); ok {
		if icon, ok := categoryIcons[info.IconRef]; ok {
			return icon
		}
	}
	return "📦"
}

// LevelStyle returns the status style for a budget utilization level.
func (t Theme) LevelStyle(level model.BudgetLevel) lipgloss.Style {
	switch level {
	case model.BudgetLevelDanger:
		return t.StatusError
	case model.BudgetLevelWarning:
		return t.StatusWarning
	default:
		return t.StatusSuccess
	}
}
