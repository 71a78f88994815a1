package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDB       string
	DefaultLocale string
	ListLimit     int64 // max documents returned by list queries
}

// Load reads the environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return &Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGODB_DATABASE", "booking"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		ListLimit:     getEnvInt("LIST_LIMIT", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		log.Printf("Invalid %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
