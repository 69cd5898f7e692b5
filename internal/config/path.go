package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the application's configuration directory,
// $HOME/.config/spendwise.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spendwise"
	}
	return filepath.Join(home, ".config", "spendwise")
}

// DefaultDatabasePath returns the default SQLite location.
func DefaultDatabasePath() string {
	return filepath.Join(Dir(), "spendwise.db")
}

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}
