package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings. Everything is optional:
// the app runs fully offline against a local snapshot file with no env at
// all.
type Config struct {
	// DataFile is the local snapshot path used when DatabaseURL is unset.
	DataFile string

	// DatabaseURL switches persistence to the Postgres snapshot store.
	DatabaseURL string

	// OpenAIAPIKey enables the AI assistant commands.
	OpenAIAPIKey string

	// AdminPassword overrides the device-derived gate password.
	AdminPassword string

	// SystemID feeds the license key derivation; defaults to the hostname.
	SystemID string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	systemID := getEnv("SYSTEM_ID", "")
	if systemID == "" {
		systemID, _ = os.Hostname()
	}

	return Config{
		DataFile:      getEnv("TECHFAB_DATA_FILE", "techfab_billing_state.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SystemID:      systemID,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
