package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// At most one of the two is used; Postgres wins if both are set.
	// With none of them, the history is kept in memory.
	PostgresDSN      string `envconfig:"POSTGRES_DSN"`
	FirestoreProject string `envconfig:"FIRESTORE_PROJECT"`
}

func parseConfig() (*config, error) {
	var config config

	if err := envconfig.Process("commander", &config); err != nil {
		return nil, fmt.Errorf("config: failed to parse from env, %w", err)
	}

	return &config, nil
}

func (c config) newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: invalid log level, %w", err)
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("config: failed to build logger, %w", err)
	}

	return logger, nil
}
