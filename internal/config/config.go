// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir      string // Base directory for the databases (always absolute)
	Port         int
	LogLevel     string
	DevMode      bool
	JWTSecret    string
	TokenTTL     time.Duration
	SnapshotTTL  time.Duration // Dashboard snapshot cache lifetime
	CurrencyCode string        // Fallback display currency for new users
	Backup       *BackupConfig
}

// BackupConfig holds optional S3 backup configuration. Backups are disabled
// unless a bucket is configured.
type BackupConfig struct {
	Enabled   bool
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // Optional custom endpoint (e.g. R2, MinIO)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("FOLIO_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	secret := getEnv("FOLIO_JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("FOLIO_JWT_SECRET must be set")
	}

	cfg := &Config{
		DataDir:      absDataDir,
		Port:         getEnvAsInt("FOLIO_PORT", 8080),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("DEV_MODE", false),
		JWTSecret:    secret,
		TokenTTL:     getEnvAsDuration("FOLIO_TOKEN_TTL", 24*time.Hour),
		SnapshotTTL:  getEnvAsDuration("FOLIO_SNAPSHOT_TTL", 5*time.Minute),
		CurrencyCode: getEnv("FOLIO_DEFAULT_CURRENCY", "USD"),
		Backup:       loadBackupConfig(),
	}

	return cfg, nil
}

func loadBackupConfig() *BackupConfig {
	bucket := getEnv("BACKUP_S3_BUCKET", "")
	if bucket == "" {
		return &BackupConfig{Enabled: false}
	}

	return &BackupConfig{
		Enabled:   true,
		Bucket:    bucket,
		Prefix:    getEnv("BACKUP_S3_PREFIX", "folio-backups"),
		Region:    getEnv("BACKUP_S3_REGION", "auto"),
		AccessKey: getEnv("BACKUP_S3_ACCESS_KEY", ""),
		SecretKey: getEnv("BACKUP_S3_SECRET_KEY", ""),
		Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
