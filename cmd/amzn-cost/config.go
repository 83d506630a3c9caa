package main

import (
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/amzncost"
)

// Config holds settings read from the environment.
type Config struct {
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	LogLevel      string `env:"AMZN_COST_LOG_LEVEL"`
}

// LoadConfig parses Config from environ, or from the process environment
// when environ is nil.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, amzncost.Wrapf(err, amzncost.EINVALID, "invalid configuration: %v", err)
	}
	return cfg, nil
}

// NewLogger returns a text logger writing to w at level, or a logger that
// discards everything when level is empty.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	if level == "" {
		return slog.New(slog.DiscardHandler), nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, amzncost.Errorf(amzncost.EINVALID, "invalid AMZN_COST_LOG_LEVEL %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
