package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the runtime settings for the server and CLI
type Config struct {
	Port             string
	DatabaseURL      string
	DataPath         string
	GinMode          string
	LogLevel         string
	DefaultRulesPath string
	AdminUsername    string
	AdminPassword    string
}

// LoadEnv loads the first .env found walking up to two parent directories
func LoadEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DataPath:         getEnv("DATA_PATH", "rota.db"),
		GinMode:          getEnv("GIN_MODE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DefaultRulesPath: getEnv("DEFAULT_RULES_PATH", ""),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

// NewLogger builds a production zap logger at the configured level.
// An unknown level falls back to info.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
