package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Snapshot backends.
const (
	BackendPostgres = "postgres"
	BackendObject   = "object"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SnapshotConfig controls where the library and document lists are persisted.
type SnapshotConfig struct {
	Backend    string
	MaxRetries int
	SeedPath   string
}

// ProcessingConfig bounds document fetches.
type ProcessingConfig struct {
	FetchTimeout  time.Duration
	MaxDocumentMB int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	Timezone      string
	LogLevel      string
	AdminPassword string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Snapshot      SnapshotConfig
	Processing    ProcessingConfig
}

// Load reads configuration from environment variables.
// A .env file is picked up when main imports github.com/joho/godotenv/autoload;
// real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:       getEnv("APP_HOST", "localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		Timezone:      getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "pollbuilder"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Snapshot: SnapshotConfig{
			Backend:    strings.ToLower(getEnv("SNAPSHOT_BACKEND", BackendPostgres)),
			MaxRetries: getEnvInt("SNAPSHOT_MAX_RETRIES", 3),
			SeedPath:   getEnv("LIBRARY_SEED_PATH", ""),
		},
		Processing: ProcessingConfig{
			FetchTimeout:  time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 30)) * time.Second,
			MaxDocumentMB: getEnvInt("MAX_DOCUMENT_MB", 25),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesPostgres reports whether snapshots live in PostgreSQL.
func (c *AppConfig) UsesPostgres() bool {
	return c.Snapshot.Backend != BackendObject
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
