// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultStore       = "memory"
	defaultSQLiteName  = "euchre.db"
	defaultTargetScore = 10
	defaultLogLevel    = "info"
)

// Environment keys.
const (
	EnvStore       = "EUCHRE_STORE"
	EnvSQLitePath  = "EUCHRE_SQLITE_PATH"
	EnvPostgresDSN = "EUCHRE_POSTGRES_DSN"
	EnvRedisAddr   = "EUCHRE_REDIS_ADDR"
	EnvTargetScore = "EUCHRE_TARGET_SCORE"
	EnvLogLevel    = "EUCHRE_LOG_LEVEL"
)

type Config struct {
	// Store backend: memory, sqlite, postgres or redis.
	Store       string
	SQLitePath  string
	PostgresDSN string
	RedisAddr   string

	// Points needed to win a match.
	TargetScore int

	LogLevel logrus.Level
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set take precedence over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// LoadFile is Load with an explicit env file.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	c := Config{
		Store:       strings.ToLower(get(EnvStore)),
		SQLitePath:  get(EnvSQLitePath),
		PostgresDSN: get(EnvPostgresDSN),
		RedisAddr:   get(EnvRedisAddr),
		TargetScore: defaultTargetScore,
		LogLevel:    logrus.InfoLevel,
	}
	if c.Store == "" {
		c.Store = defaultStore
	}
	if c.Store == "sqlite" && c.SQLitePath == "" {
		path, err := defaultSQLitePath()
		if err != nil {
			return Config{}, err
		}
		c.SQLitePath = path
	}
	if c.SQLitePath != "" && c.SQLitePath != ":memory:" {
		c.SQLitePath = filepath.Clean(c.SQLitePath)
	}
	if raw := get(EnvTargetScore); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTargetScore, err)
		}
		c.TargetScore = n
	}
	level := get(EnvLogLevel)
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	c.LogLevel = lvl

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store {
	case "memory", "sqlite":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("%s is required for the postgres store", EnvPostgresDSN)
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("%s is required for the redis store", EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.TargetScore <= 0 {
		return fmt.Errorf("TargetScore must be > 0")
	}
	return nil
}

// NewLogger returns a text logger at the configured level.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func defaultSQLitePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "euchre-lite", defaultSQLiteName), nil
}
