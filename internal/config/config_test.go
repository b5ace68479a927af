package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(lookup(nil))
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Store)
	assert.Equal(t, 10, c.TargetScore)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
}

func TestFromEnvValues(t *testing.T) {
	c, err := FromEnv(lookup(map[string]string{
		EnvStore:       " SQLite ",
		EnvSQLitePath:  "data/../data/games.db",
		EnvTargetScore: "5",
		EnvLogLevel:    "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Store)
	assert.Equal(t, filepath.Join("data", "games.db"), c.SQLitePath)
	assert.Equal(t, 5, c.TargetScore)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, logrus.DebugLevel, c.NewLogger().GetLevel())
}

func TestFromEnvKeepsInMemorySQLite(t *testing.T) {
	c, err := FromEnv(lookup(map[string]string{EnvStore: "sqlite", EnvSQLitePath: ":memory:"}))
	require.NoError(t, err)
	assert.Equal(t, ":memory:", c.SQLitePath)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown store", map[string]string{EnvStore: "mongo"}, `unknown store "mongo"`},
		{"postgres without dsn", map[string]string{EnvStore: "postgres"}, EnvPostgresDSN},
		{"redis without addr", map[string]string{EnvStore: "redis"}, EnvRedisAddr},
		{"bad target", map[string]string{EnvTargetScore: "ten"}, EnvTargetScore},
		{"zero target", map[string]string{EnvTargetScore: "0"}, "TargetScore"},
		{"bad level", map[string]string{EnvLogLevel: "loud"}, EnvLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookup(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	for _, key := range []string{EnvStore, EnvRedisAddr, EnvTargetScore, EnvLogLevel, EnvSQLitePath, EnvPostgresDSN} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("EUCHRE_STORE=redis\nEUCHRE_REDIS_ADDR=localhost:6379\nEUCHRE_TARGET_SCORE=7\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", c.Store)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 7, c.TargetScore)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
