package app

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel          string `env:"ATM_LOG_LEVEL"           envDefault:"warn"`
	LogOutput         string `env:"ATM_LOG_OUTPUT"          envDefault:"stderr"`
	CardValidityYears int    `env:"ATM_CARD_VALIDITY_YEARS" envDefault:"10"`
}

// ParseConfig reads the environment first and lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level (debug|info|warn|error) (env: ATM_LOG_LEVEL)")
	fs.StringVar(&cfg.LogOutput, "log-output", cfg.LogOutput, "Log destination: stderr or a file path (env: ATM_LOG_OUTPUT)")
	fs.IntVar(&cfg.CardValidityYears, "card-years", cfg.CardValidityYears, "Validity of issued cards in years (env: ATM_CARD_VALIDITY_YEARS)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.LogOutput == "" || c.LogOutput == "stdout" {
		return errors.New("log output must not be stdout, it carries the ATM console")
	}
	if c.CardValidityYears <= 0 {
		return fmt.Errorf("card validity must be positive, got %d years", c.CardValidityYears)
	}
	return nil
}
