package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "finora.db", cfg.Database.Path)
	assert.False(t, cfg.Auth.Required)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.Server.CORSAllowOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_ACCESS_TOKEN_DURATION", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://finora.app , https://admin.finora.app ,")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Auth.Required)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, []string{"https://finora.app", "https://admin.finora.app"}, cfg.Server.CORSAllowOrigins)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "many")
	t.Setenv("AUTH_REQUIRED", "maybe")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.False(t, cfg.Auth.Required)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestDSN_SQLiteEnablesForeignKeys(t *testing.T) {
	cfg := DatabaseConfig{Driver: DriverSQLite, Path: "data/finora.db"}

	assert.Equal(t, "file:data/finora.db?_foreign_keys=on&_busy_timeout=5000", cfg.DSN())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Empty(t, cfg.Auth.JWTSecret)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Load()
	cfg.Server.Port = "abc"
	cfg.Database.Driver = "mysql"
	cfg.Server.CORSAllowOrigins = []string{"not a url"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 'abc'")
	assert.Contains(t, err.Error(), "invalid database driver 'mysql'")
	assert.Contains(t, err.Error(), "invalid CORS origin 'not a url'")
}
