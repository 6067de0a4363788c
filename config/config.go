package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the bot needs from the environment.
type Config struct {
	Token   string
	AdminID int64

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads and validates configuration from the environment.
// Every variable is required; a missing or malformed one is a startup error.
func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	adminRaw := os.Getenv("ADMIN_ID")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_ID environment variable is required")
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be an integer: %w", err)
	}

	cfg := &Config{
		Token:      token,
		AdminID:    adminID,
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}

	for name, value := range map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	return cfg, nil
}

// DSN builds the MySQL connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}
