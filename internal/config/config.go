// Package config loads spendwise settings from flags, environment, .env and
// the config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Akash50142/expense-tracker/internal/common"
	"github.com/Akash50142/expense-tracker/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// SPENDWISE_DATABASE_PATH.
const EnvPrefix = "SPENDWISE"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the typed application configuration.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
	Server   ServerConfig
	Import   ImportConfig
	Reports  ReportsConfig
}

// DatabaseConfig selects and locates the key-value store.
type DatabaseConfig struct {
	Backend string
	Path    string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// ServerConfig configures the local JSON API.
type ServerConfig struct {
	Addr string
}

// ImportConfig configures bank statement import.
type ImportConfig struct {
	DefaultCategory model.Category
}

// ReportsConfig sizes report windows and budget alert levels.
type ReportsConfig struct {
	Months           int
	Weeks            int
	RecentCount      int
	WarningThreshold float64
	DangerThreshold  float64
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.backend", BackendSQLite)
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.addr", "127.0.0.1:8484")
	v.SetDefault("import.default_category", string(model.CategoryOther))
	v.SetDefault("reports.months", 6)
	v.SetDefault("reports.weeks", 4)
	v.SetDefault("reports.recent_count", 5)
	v.SetDefault("reports.warning_threshold", 0.7)
	v.SetDefault("reports.danger_threshold", 0.9)
}

// Init prepares v the way the CLI uses it: defaults, SPENDWISE_ environment
// overrides, and the config file at cfgFile or $HOME/.config/spendwise/config.yaml.
// A missing default config file is not an error; a missing --config file is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("database.backend"))),
			Path:    ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Import: ImportConfig{
			DefaultCategory: model.Category(strings.ToLower(strings.TrimSpace(v.GetString("import.default_category")))),
		},
		Reports: ReportsConfig{
			Months:           v.GetInt("reports.months"),
			Weeks:            v.GetInt("reports.weeks"),
			RecentCount:      v.GetInt("reports.recent_count"),
			WarningThreshold: v.GetFloat64("reports.warning_threshold"),
			DangerThreshold:  v.GetFloat64("reports.danger_threshold"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for the sqlite backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown database.backend %q", c.Database.Backend))
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.format %q", c.Logging.Format))
	}

	if !c.Import.DefaultCategory.IsValid() {
		errs = append(errs, fmt.Errorf("import.default_category: %w: %q", model.ErrInvalidCategory, c.Import.DefaultCategory))
	}

	if c.Reports.Months <= 0 {
		errs = append(errs, errors.New("reports.months must be positive"))
	}
	if c.Reports.Weeks <= 0 {
		errs = append(errs, errors.New("reports.weeks must be positive"))
	}
	if c.Reports.RecentCount <= 0 {
		errs = append(errs, errors.New("reports.recent_count must be positive"))
	}
	if c.Reports.WarningThreshold <= 0 || c.Reports.DangerThreshold <= 0 {
		errs = append(errs, errors.New("report thresholds must be positive"))
	}
	if c.Reports.WarningThreshold >= c.Reports.DangerThreshold {
		errs = append(errs, errors.New("reports.warning_threshold must be below reports.danger_threshold"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
