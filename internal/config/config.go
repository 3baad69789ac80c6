package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// UI front ends.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

var (
	ErrUnknownUI        = errors.New("unknown UI")
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY environment variable is not set")
)

// Config holds the application configuration.
type Config struct {
	StoryPath   string `env:"MINIDUNGEON_STORY"`
	UI          string `env:"MINIDUNGEON_UI"           envDefault:"console"`
	ClearScreen bool   `env:"MINIDUNGEON_CLEAR_SCREEN" envDefault:"true"`

	LogLevel    string `env:"MINIDUNGEON_LOG_LEVEL"    envDefault:"warn"`
	LogEncoding string `env:"MINIDUNGEON_LOG_ENCODING" envDefault:"console"`
	LogOutput   string `env:"MINIDUNGEON_LOG_OUTPUT"   envDefault:"stderr"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	SimMaxTurns  int    `env:"MINIDUNGEON_SIM_MAX_TURNS" envDefault:"10"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.UI {
	case UIConsole, UITUI:
	default:
		return nil, fmt.Errorf("MINIDUNGEON_UI=%q: %w", cfg.UI, ErrUnknownUI)
	}
	return &cfg, nil
}

// RequireGeminiKey fails when no Gemini key is configured.
func (c *Config) RequireGeminiKey() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingGeminiKey
	}
	return nil
}
