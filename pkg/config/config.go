package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	GitHub  GitHubConfig
	Sync    SyncConfig
	Cache   CacheConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type StorageConfig struct {
	ProjectsFile string
	DatabasePath string
}

type GitHubConfig struct {
	Token string
	// Owner and Repo identify the platform repository itself,
	// used by the contributors endpoint.
	Owner          string
	Repo           string
	RequestTimeout int
}

type SyncConfig struct {
	IntervalMinutes int
	RequestDelayMS  int
}

type CacheConfig struct {
	TTLMinutes        int
	FailureTTLMinutes int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Storage: StorageConfig{
			ProjectsFile: getEnv("PROJECTS_FILE", "./data/projects.json"),
			DatabasePath: getEnv("DB_PATH", "./os228.db"),
		},
		GitHub: GitHubConfig{
			Token:          getEnv("GITHUB_TOKEN", ""),
			Owner:          getEnv("PLATFORM_OWNER", "Docteur-Parfait"),
			Repo:           getEnv("PLATFORM_REPO", "os228"),
			RequestTimeout: getEnvAsInt("HTTP_TIMEOUT", 15),
		},
		Sync: SyncConfig{
			IntervalMinutes: getEnvAsInt("SYNC_INTERVAL_MINUTES", 0),
			RequestDelayMS:  getEnvAsInt("SYNC_REQUEST_DELAY_MS", 150),
		},
		Cache: CacheConfig{
			TTLMinutes:        getEnvAsInt("CACHE_TTL_MINUTES", 60),
			FailureTTLMinutes: getEnvAsInt("FAILURE_CACHE_TTL_MINUTES", 10),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
