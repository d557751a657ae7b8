package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	Password          string
	DBPath            string
	UploadDirectory   string
	LogDirectory      string
	MaxUploadSize     int64    // Upload size limit in bytes
	AcceptedTypes     []string // MIME types the intake accepts
	ProcessingWorkers int      // Number of detection worker threads
	QueueCapacity     int      // Pending analyses before uploads are refused
}

func Load() *Config {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvAsInt("PORT", 8080),
		Password:          getEnv("PASSWORD", "panelscan"),
		DBPath:            getEnv("DB_PATH", filepath.Join(".", "data", "panelscan.db")),
		UploadDirectory:   getEnv("UPLOAD_DIR", filepath.Join(".", "uploads")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),
		MaxUploadSize:     getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20),
		AcceptedTypes:     getEnvAsList("ACCEPTED_TYPES", []string{"image/jpeg", "image/png", "image/webp"}),
		ProcessingWorkers: getEnvAsInt("PROCESSING_WORKERS", 3),
		QueueCapacity:     getEnvAsInt("QUEUE_CAPACITY", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
