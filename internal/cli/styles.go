// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Akash50142/expense-tracker/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#10B981") // Emerald
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#16A34A")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#EAB308")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#DC2626")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#0891B2")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#6B7280")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				PaddingRight(2)

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "💰"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
)

// tailwindColors maps the text color tokens of the category registry to
// their Tailwind 600 shade.
var tailwindColors = map[string]lipgloss.Color{
	"text-blue-600":    "#2563EB",
	"text-green-600":   "#16A34A",
	"text-yellow-600":  "#CA8A04",
	"text-orange-600":  "#EA580C",
	"text-indigo-600":  "#4F46E5",
	"text-red-600":     "#DC2626",
	"text-emerald-600": "#059669",
	"text-pink-600":    "#DB2777",
	"text-purple-600":  "#9333EA",
	"text-cyan-600":    "#0891B2",
	"text-slate-600":   "#475569",
	"text-gray-600":    "#4B5563",
}

// CategoryColor returns the terminal color for a category. Unknown
// categories get the subtle color.
func CategoryColor(c model.Category) lipgloss.Color {
	info, ok := model.Lookup(c)
	if !ok {
		return SubtleColor
	}
	if color, ok := tailwindColors[info.ColorToken]; ok {
		return color
	}
	return SubtleColor
}

// FormatCategory renders a category label in its color.
func FormatCategory(c model.Category) string {
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Render(c.Label())
}

// LevelStyle returns the style for a budget utilization level.
func LevelStyle(level model.BudgetLevel) lipgloss.Style {
	switch level {
	case model.BudgetLevelDanger:
		return ErrorStyle
	case model.BudgetLevelWarning:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
