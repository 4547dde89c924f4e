package config

import (
    "log/slog"
    "os"
    "path/filepath"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/joho/godotenv"
    "github.com/pkg/errors"
    "github.com/spf13/viper"
)

type Config struct {
    PagesDir          string `mapstructure:"PAGES_DIR" validate:"required"`
    LocationsCSV      string `mapstructure:"LOCATIONS_CSV" validate:"required"`
    DebugPath         string `mapstructure:"DEBUG_PATH"`
    BaseURL           string `mapstructure:"BASE_URL" validate:"required,url"`
    DatabaseURL       string `mapstructure:"DATABASE_URL"`
    DatabaseDriver    string `mapstructure:"DATABASE_DRIVER" validate:"oneof=postgres sqlite"`
    Workers           int    `mapstructure:"WORKERS" validate:"min=1,max=64"`
    ExpectedLocations int    `mapstructure:"EXPECTED_LOCATIONS" validate:"min=0"`
    SitemapURLLimit   int    `mapstructure:"SITEMAP_URL_LIMIT" validate:"min=1,max=50000"`
    MetricsPath       string `mapstructure:"METRICS_PATH"`
    LogLevel          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

    debugDerived bool
}

var defaults = map[string]any{
    "PAGES_DIR":          "generated-pages",
    "LOCATIONS_CSV":      "uk-locations.csv",
    "DEBUG_PATH":         "",
    "BASE_URL":           "https://www.tradematch.uk",
    "DATABASE_URL":       "",
    "DATABASE_DRIVER":    "postgres",
    "WORKERS":            1,
    "EXPECTED_LOCATIONS": 0,
    "SITEMAP_URL_LIMIT":  20000,
    "METRICS_PATH":       "",
    "LOG_LEVEL":          "info",
}

var validate = validator.New()

// Load reads an optional .env file, the environment and an optional config file
// named by TMSEO_CONFIG, in increasing order of precedence for the environment.
func Load() (*Config, error) {
    // Load .env file if it exists
    _ = godotenv.Load()

    v := viper.New()
    for key, val := range defaults {
        v.SetDefault(key, val)
    }
    v.AutomaticEnv()

    if path := os.Getenv("TMSEO_CONFIG"); path != "" {
        v.SetConfigFile(path)
        if err := v.ReadInConfig(); err != nil {
            return nil, errors.Wrapf(err, "failed to read config file %s", path)
        }
    }

    cfg := &Config{}
    if err := v.Unmarshal(cfg); err != nil {
        return nil, errors.Wrap(err, "failed to decode config")
    }
    cfg.applyDerived()

    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    return cfg, nil
}

func (c *Config) applyDerived() {
    if c.DebugPath == "" || c.debugDerived {
        c.DebugPath = filepath.Join(c.PagesDir, "internal-link-debug.json")
        c.debugDerived = true
    }
    c.DatabaseDriver = strings.ToLower(c.DatabaseDriver)
    c.LogLevel = strings.ToLower(c.LogLevel)
}

func (c *Config) Validate() error {
    if err := validate.Struct(c); err != nil {
        return errors.Wrap(err, "invalid configuration")
    }
    return nil
}

// SetPagesDir overrides the pages directory. A debug path derived from the
// old directory follows it.
func (c *Config) SetPagesDir(dir string) {
    c.PagesDir = dir
    c.applyDerived()
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
    switch c.LogLevel {
    case "debug":
        return slog.LevelDebug
    case "warn":
        return slog.LevelWarn
    case "error":
        return slog.LevelError
    default:
        return slog.LevelInfo
    }
}

// PhasedSitemapDir is where phased sitemaps and rollout state live.
func (c *Config) PhasedSitemapDir() string {
    return filepath.Join(c.PagesDir, "sitemaps", "phased")
}
