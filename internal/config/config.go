// internal/config/config.go
//
// Environment-driven configuration.
// A .env file in the working directory is loaded first (development);
// real environment variables always win.
//
//	PORT                 HTTP port (5175)
//	LOG_LEVEL            zerolog level (info)
//	WORDS_ANSWERS_FILE   answer list path (embedded default)
//	WORDS_GUESSES_FILE   guess vocabulary path (embedded default)
//	DB_PATH              sqlite file for precomputed openers (./data/solver.db)
//	JWT_SECRET           session token signing key (dev_secret_change_me)
//	SESSION_TTL_HOURS    session token lifetime (24)
//	CLIENT_ORIGIN        CORS origin (http://localhost:5173)
//	SUGGEST_TOP_K        default number of suggestions (40)
//	SUGGEST_CACHE_SIZE   LRU entries for suggestion results (256)
//	APP_ENV              "production" enables Secure/SameSite=None cookies

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	LogLevel     string
	AnswersFile  string
	GuessesFile  string
	DBPath       string
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	TopK         int
	CacheSize    int
	Production   bool
}

// Load reads the configuration from the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AnswersFile:  os.Getenv("WORDS_ANSWERS_FILE"),
		GuessesFile:  os.Getenv("WORDS_GUESSES_FILE"),
		DBPath:       getEnv("DB_PATH", "./data/solver.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:   time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		TopK:         envInt("SUGGEST_TOP_K", 40),
		CacheSize:    envInt("SUGGEST_CACHE_SIZE", 256),
		Production:   os.Getenv("APP_ENV") == "production",
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses a positive integer, falling back to def.
func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}
