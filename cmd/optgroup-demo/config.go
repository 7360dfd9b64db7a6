package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-formgen-optgroup/internal/bootstrap"
)

// Config is read from OPTGROUP_* environment variables.
type Config struct {
	Addr           string            `env:"OPTGROUP_ADDR" envDefault:":8383"`
	LogFormat      string            `env:"OPTGROUP_LOG_FORMAT" envDefault:"text"`
	LogLevel       string            `env:"OPTGROUP_LOG_LEVEL" envDefault:"info"`
	Form           string            `env:"OPTGROUP_FORM"`
	VocabularyDir  string            `env:"OPTGROUP_VOCABULARY_DIR"`
	LocalesDir     string            `env:"OPTGROUP_LOCALES_DIR"`
	OpenAPI        string            `env:"OPTGROUP_OPENAPI"`
	OpenAPISchemas []string          `env:"OPTGROUP_OPENAPI_SCHEMAS" envSeparator:","`
	DefaultLocale  string            `env:"OPTGROUP_DEFAULT_LOCALE" envDefault:"en-US"`
	AllowHTTP      bool              `env:"OPTGROUP_ALLOW_HTTP" envDefault:"false"`
	Theme          string            `env:"OPTGROUP_THEME" envDefault:"default"`
	ThemeTokens    map[string]string `env:"OPTGROUP_THEME_TOKENS"`
	ShutdownGrace  time.Duration     `env:"OPTGROUP_SHUTDOWN_GRACE" envDefault:"5s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) bootstrap() bootstrap.Config {
	return bootstrap.Config{
		Form:           c.Form,
		VocabularyDir:  c.VocabularyDir,
		LocalesDir:     c.LocalesDir,
		OpenAPI:        c.OpenAPI,
		OpenAPISchemas: c.OpenAPISchemas,
		DefaultLocale:  c.DefaultLocale,
		AllowHTTP:      c.AllowHTTP,
	}
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
