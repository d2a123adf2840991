package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "host=localhost dbname=social")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, NotificationStorePostgres, cfg.NotificationStore)
	assert.Equal(t, "socialmedia", cfg.MongoDatabase)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "host=db")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("NOTIFICATION_STORE", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("JWT_SECRET", "a-real-signing-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, NotificationStoreMongo, cfg.NotificationStore)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing postgres", env: map[string]string{"POSTGRES_CONN_STR": ""}},
		{name: "mongo store without uri", env: map[string]string{"POSTGRES_CONN_STR": "x", "NOTIFICATION_STORE": "mongo", "MONGO_URI": ""}},
		{name: "unknown store", env: map[string]string{"POSTGRES_CONN_STR": "x", "NOTIFICATION_STORE": "redis"}},
		{name: "bad duration", env: map[string]string{"POSTGRES_CONN_STR": "x", "JWT_TTL": "forever"}},
		{name: "default secret in production", env: map[string]string{"POSTGRES_CONN_STR": "x", "ENV": "production", "JWT_SECRET": DevJWTSecret}},
		{name: "empty secret in production", env: map[string]string{"POSTGRES_CONN_STR": "x", "ENV": "production", "JWT_SECRET": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{Env: "production", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	_, err = NewLogger(&Config{Env: "development", LogLevel: "loud"})
	assert.Error(t, err)
}
