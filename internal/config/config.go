package config

import (
	"os"
	"strings"
)

type Config struct {
	Port             string
	DatabaseURL      string
	KafkaBrokers     []string
	AnalyticsEnabled bool
}

// Load reads the runtime configuration from the environment. DATABASE_URL
// defaults to empty, which disables the results store rather than pointing
// at a database that may not exist.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		KafkaBrokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AnalyticsEnabled: getEnv("ANALYTICS_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
