package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the planner server.
type Config struct {
	ServerPort int

	// StoreBackend selects the credential/audit store implementation:
	// "csv" (flat files under DataDir) or "sqlite" (database at DBPath).
	StoreBackend string
	DataDir      string
	DBPath       string

	// ModelDir is the directory holding the trained model artifacts.
	ModelDir string

	SessionSecret string
	SessionTTL    time.Duration
}

// Load reads configuration from the environment. In dev mode (ENV=dev) a .env
// file is loaded first if present.
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		StoreBackend:  getEnv("STORE_BACKEND", "csv"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		DBPath:        getEnv("DB_PATH", "./data/foodplanner.db"),
		ModelDir:      getEnv("MODEL_DIR", "./model"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
