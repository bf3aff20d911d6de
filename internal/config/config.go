// internal/config/config.go
//
// Runtime configuration for the hangman server.
// Values come from the process environment; a .env file in the working
// directory is loaded first in development (missing file is fine).
//
// Environment variables (defaults in parentheses):
//   PORT (5175), LOG_LEVEL (info), ENV (development), DB_PATH (./data/app.db),
//   JWT_SECRET (dev_secret_change_me), JWT_EXPIRES_DAYS (14),
//   COOKIE_NAME (hangman_token), CLIENT_ORIGIN (http://localhost:5173),
//   DAILY_SALT (local_dev_salt), WORDS_FILE (embedded list).
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every setting the binary reads from the environment.
type Config struct {
	Port         string
	LogLevel     string
	Env          string
	DBPath       string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	ClientOrigin string
	DailySalt    string
	WordsFile    string
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	days := envInt("JWT_EXPIRES_DAYS", 14)
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("ENV", "development"),
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:       time.Duration(days) * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "hangman_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		WordsFile:    os.Getenv("WORDS_FILE"),
	}
}

// Production reports whether cookies should be Secure/SameSite=None.
func (c Config) Production() bool { return c.Env == "production" }

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns k parsed as an int, or def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
