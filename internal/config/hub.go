package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends understood by the hub.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// HubConfig holds process-level settings: where state lives and which
// addresses the servers bind to.
type HubConfig struct {
	Backend  string // sqlite, redis or memory
	DBPath   string
	RedisURL string
	HTTPAddr string
	SSHAddr  string
	HostKey  string
	LogLevel string
	FPS      int
}

// LoadHub reads HUB_* variables, loading a .env file first if one exists.
func LoadHub() HubConfig {
	// Load .env file if it exists
	_ = godotenv.Load()

	return HubConfig{
		Backend:  getEnv("HUB_BACKEND", BackendSQLite),
		DBPath:   getEnv("HUB_DB_PATH", defaultDBPath()),
		RedisURL: getEnv("HUB_REDIS_URL", "redis://localhost:6379/0"),
		HTTPAddr: getEnv("HUB_HTTP_ADDR", ":8080"),
		SSHAddr:  getEnv("HUB_SSH_ADDR", ":2222"),
		HostKey:  getEnv("HUB_SSH_HOST_KEY", ".ssh/hub_ed25519"),
		LogLevel: getEnv("HUB_LOG_LEVEL", "info"),
		FPS:      getEnvInt("HUB_FPS", 60),
	}
}

// defaultDBPath returns ~/.arcade/hub.db, or hub.db when home is unavailable.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hub.db"
	}
	return filepath.Join(home, ".arcade", "hub.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
