package config

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"store driver from env", "STORE_DRIVER", "sqlite", StorePostgres, "sqlite"},
		{"transport default when unset", "GEMINI_TRANSPORT", "", TransportREST, TransportREST},
		{"model from env", "GEMINI_MODEL", "gemini-1.5-pro", "gemini-2.0-flash", "gemini-1.5-pro"},
		{"sqlite path default when unset", "SQLITE_PATH", "", "./data/chat.db", "./data/chat.db"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			if got := getEnvOrDefault(tc.key, tc.defaultVal); got != tc.expected {
				t.Errorf("getEnvOrDefault(%q) = %q; want %q", tc.key, got, tc.expected)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"timeout from env", "GEMINI_TIMEOUT_SECONDS", "90", 60, 90},
		{"timeout default when unset", "GEMINI_TIMEOUT_SECONDS", "", 60, 60},
		{"history limit non-numeric", "HISTORY_LIMIT", "fifty", 50, 50},
		{"history limit from env", "HISTORY_LIMIT", "20", 50, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			if got := getEnvAsIntOrDefault(tc.key, tc.defaultVal); got != tc.expected {
				t.Errorf("getEnvAsIntOrDefault(%q) = %d; want %d", tc.key, got, tc.expected)
			}
		})
	}
}

func TestMustGetEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-123")
	if got := mustGetEnv("GEMINI_API_KEY"); got != "key-123" {
		t.Errorf("mustGetEnv = %q; want %q", got, "key-123")
	}

	t.Setenv("GEMINI_API_KEY", "")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for empty GEMINI_API_KEY")
		}
	}()
	mustGetEnv("GEMINI_API_KEY")
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TRANSPORT",
		"GEMINI_TIMEOUT_SECONDS", "STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"REDIS_URL", "HISTORY_LIMIT", "FRONTEND_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("Expected API key from env, got %q", cfg.GeminiAPIKey)
	}
	if cfg.Port != "5000" {
		t.Errorf("Expected port 5000, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" || cfg.GeminiTransport != TransportREST {
		t.Errorf("Unexpected gemini defaults: %q %q", cfg.GeminiModel, cfg.GeminiTransport)
	}
	if cfg.GeminiTimeoutSeconds != 60 || cfg.HistoryLimit != 50 {
		t.Errorf("Unexpected numeric defaults: timeout=%d limit=%d", cfg.GeminiTimeoutSeconds, cfg.HistoryLimit)
	}
	if cfg.StoreDriver != StorePostgres || cfg.SQLitePath != "./data/chat.db" {
		t.Errorf("Unexpected store defaults: %q %q", cfg.StoreDriver, cfg.SQLitePath)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("Unexpected frontend URL %q", cfg.FrontendURL)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "8088")
	t.Setenv("GEMINI_TRANSPORT", TransportSDK)
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "5")
	t.Setenv("STORE_DRIVER", StoreRedis)
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("FRONTEND_URL", "http://chat.test")

	cfg := Load()
	if cfg.Port != "8088" || cfg.GeminiTransport != TransportSDK || cfg.GeminiTimeoutSeconds != 5 {
		t.Errorf("Unexpected server/gemini settings: %+v", cfg)
	}
	if cfg.StoreDriver != StoreRedis || cfg.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Unexpected store settings: %q %q", cfg.StoreDriver, cfg.RedisURL)
	}
	if cfg.FrontendURL != "http://chat.test" {
		t.Errorf("Unexpected frontend URL %q", cfg.FrontendURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_PanicsWithoutAPIKey(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when GEMINI_API_KEY is missing")
		}
	}()
	Load()
}

func TestValidate(t *testing.T) {
	base := Config{
		GeminiTransport:      TransportREST,
		GeminiTimeoutSeconds: 60,
		SQLitePath:           "./data/chat.db",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"postgres with url", func(c *Config) { c.StoreDriver = StorePostgres; c.DatabaseURL = "postgres://x" }, false},
		{"postgres without url", func(c *Config) { c.StoreDriver = StorePostgres }, true},
		{"redis with url", func(c *Config) { c.StoreDriver = StoreRedis; c.RedisURL = "redis://localhost:6379" }, false},
		{"redis without url", func(c *Config) { c.StoreDriver = StoreRedis }, true},
		{"sqlite", func(c *Config) { c.StoreDriver = StoreSQLite }, false},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }, true},
		{"sdk transport", func(c *Config) { c.StoreDriver = StoreSQLite; c.GeminiTransport = TransportSDK }, false},
		{"unknown transport", func(c *Config) { c.StoreDriver = StoreSQLite; c.GeminiTransport = "grpc" }, true},
		{"zero timeout", func(c *Config) { c.StoreDriver = StoreSQLite; c.GeminiTimeoutSeconds = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
