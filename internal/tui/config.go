package tui

import (
	"github.com/Akash50142/expense-tracker/internal/engine"
	"github.com/Akash50142/expense-tracker/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	ReportOptions engine.ReportOptions
	Width         int
	Height        int
	ShowHelp      bool
	AltScreen     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		ReportOptions: engine.DefaultReportOptions(),
		Width:         100,
		Height:        30,
		ShowHelp:      true,
		AltScreen:     true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithReportOptions sizes the report windows shown on the dashboard.
func WithReportOptions(opts engine.ReportOptions) Option {
	return func(c *Config) {
		c.ReportOptions = opts
	}
}

// WithAltScreen controls whether the dashboard takes over the terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
