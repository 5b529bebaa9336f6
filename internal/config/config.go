package config

import (
	"fmt"
	"os"
	"strconv"
)

const DefaultInputPath = "morepokemon.csv"

type Config struct {
	InputPath   string
	DatabaseURL string
	DBBatchSize int
}

// New builds the configuration from the environment. DATABASE_URL is optional;
// without it the weights are only printed.
func New() (*Config, error) {
	cfg := &Config{
		InputPath:   DefaultInputPath,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBBatchSize: 1000,
	}

	if inputPath := os.Getenv("PROFESSOR_OAK_CSV"); inputPath != "" {
		cfg.InputPath = inputPath
	}

	var err error
	cfg.DBBatchSize, err = getEnvAsInt("DB_BATCH_SIZE", cfg.DBBatchSize)
	if err != nil {
		return nil, err
	}
	if cfg.DBBatchSize <= 0 {
		return nil, fmt.Errorf("invalid value for DB_BATCH_SIZE: must be greater than zero, got %d", cfg.DBBatchSize)
	}

	return cfg, nil
}

// PersistenceEnabled reports whether inverted records should be stored.
func (c *Config) PersistenceEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
