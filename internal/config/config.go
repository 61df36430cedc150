package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"

	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiBaseURL        string
	GeminiTransport      string
	GeminiTimeoutSeconds int

	// Conversation store
	StoreDriver  string
	DatabaseURL  string
	SQLitePath   string
	RedisURL     string
	HistoryLimit int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "5000"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:        getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTransport:      getEnvOrDefault("GEMINI_TRANSPORT", TransportREST),
		GeminiTimeoutSeconds: getEnvAsIntOrDefault("GEMINI_TIMEOUT_SECONDS", 60),
		StoreDriver:          getEnvOrDefault("STORE_DRIVER", StorePostgres),
		DatabaseURL:          getEnvOrDefault("DATABASE_URL", ""),
		SQLitePath:           getEnvOrDefault("SQLITE_PATH", "./data/chat.db"),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		HistoryLimit:         getEnvAsIntOrDefault("HISTORY_LIMIT", 50),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// Validate checks the settings whose requirements depend on other settings.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_DRIVER=%s", StoreRedis)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=%s", StoreSQLite)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.GeminiTransport {
	case TransportREST, TransportSDK:
	default:
		return fmt.Errorf("unknown GEMINI_TRANSPORT %q", c.GeminiTransport)
	}

	if c.GeminiTimeoutSeconds <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be positive, got %d", c.GeminiTimeoutSeconds)
	}
	return nil
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
