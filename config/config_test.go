package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFullEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "bot")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mentions")
}

func TestLoad(t *testing.T) {
	setFullEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Token)
	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "mentions", cfg.DBName)
}

func TestLoadMissingToken(t *testing.T) {
	setFullEnv(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadMissingAdmin(t *testing.T) {
	setFullEnv(t)
	t.Setenv("ADMIN_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}

func TestLoadMalformedAdmin(t *testing.T) {
	setFullEnv(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}

func TestLoadMissingDatabaseVariable(t *testing.T) {
	setFullEnv(t)
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.example.com",
		DBUser:     "bot",
		DBPassword: "secret",
		DBName:     "mentions",
	}

	assert.Equal(t,
		"bot:secret@tcp(db.example.com)/mentions?charset=utf8mb4&parseTime=True",
		cfg.DSN())
}
