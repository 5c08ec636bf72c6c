package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "unievent_db", cfg.DBName)
	assert.Equal(t, 720*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin@unievent.com", cfg.AdminEmail)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "unievent_test")
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("PORT", "9000")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "unievent_test", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "9000", cfg.Port)
}

func TestJWTExpiryFallback(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not a duration")

	cfg := Load()
	assert.Equal(t, 720*time.Hour, cfg.JWTExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "pw",
		DBName:     "unievent_db",
		DBSSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=unievent_db")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "TimeZone=UTC")
}
