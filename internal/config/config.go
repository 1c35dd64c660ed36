// Package config reads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything tunable from outside the binary. All fields have
// working defaults except the API key; without one the coach falls back to
// built-in suggestions.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"FITLOG_DB_PATH"`

	// User overrides the device-generated user id.
	User string `env:"FITLOG_USER"`

	// GroqAPIKey enables live AI suggestions on the coach tab.
	GroqAPIKey string `env:"FITLOG_GROQ_API_KEY"`

	AIBaseURL string `env:"FITLOG_AI_BASE_URL" env-default:"https://api.groq.com/openai/v1"`
	AIModel   string `env:"FITLOG_AI_MODEL" env-default:"llama3-8b-8192"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
