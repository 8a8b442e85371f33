// Package config loads process configuration from the environment, with
// .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the selfplay driver settings.
type Config struct {
	Episodes      int    // games to play per run
	Opponents     int    // scripted seats opposing seat 0
	Rounds        int    // decision points per seat per game
	ActionSpace   int    // legal-mask size of the demo table
	Seed          uint64 // simulation seed; 0 means wall clock
	IncludeHidden bool   // carry the hidden opponent-detail vector
	LogLevel      string // logrus level name
	RedisAddr     string // episode stream sink; empty disables
	PostgresURL   string // episode table sink; empty disables
}

// Load reads a .env file when present, then the CATANENV_* variables,
// applying defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{
		Episodes:    10,
		Opponents:   2,
		Rounds:      8,
		ActionSpace: 32,
		LogLevel:    "info",
		RedisAddr:   os.Getenv("CATANENV_REDIS_ADDR"),
		PostgresURL: os.Getenv("CATANENV_POSTGRES_URL"),
	}
	if v := os.Getenv("CATANENV_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.Episodes, err = intVar("CATANENV_EPISODES", cfg.Episodes); err != nil {
		return nil, err
	}
	if cfg.Opponents, err = intVar("CATANENV_OPPONENTS", cfg.Opponents); err != nil {
		return nil, err
	}
	if cfg.Rounds, err = intVar("CATANENV_ROUNDS", cfg.Rounds); err != nil {
		return nil, err
	}
	if cfg.ActionSpace, err = intVar("CATANENV_ACTION_SPACE", cfg.ActionSpace); err != nil {
		return nil, err
	}
	if v := os.Getenv("CATANENV_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: CATANENV_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("CATANENV_INCLUDE_HIDDEN"); v != "" {
		hidden, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: CATANENV_INCLUDE_HIDDEN: %w", err)
		}
		cfg.IncludeHidden = hidden
	}
	return cfg, nil
}

func intVar(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return n, nil
}
