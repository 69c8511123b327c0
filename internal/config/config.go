package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the asset service.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Blob     BlobConfig
	Postgres PostgresConfig
	MinIO    MinIOConfig
	Accounts AccountsConfig
	Metrics  MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Store driver names.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Blob driver names.
const (
	BlobDriverDisk  = "disk"
	BlobDriverMinIO = "minio"
)

// StoreConfig selects the metadata store backend.
type StoreConfig struct {
	Driver string
}

// BlobConfig selects the byte-storage backend and its limits.
type BlobConfig struct {
	Driver      string
	UploadsDir  string
	MaxFileSize int64
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// AccountsConfig groups account-related settings. When a bootstrap
// username is set, main seeds that account at startup.
type AccountsConfig struct {
	BootstrapUsername string
	BootstrapPassword string
	BcryptCost        int
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("BAKKIE_API_HOST", "0.0.0.0"),
			Port:         getInt("BAKKIE_API_PORT", 8080),
			ReadTimeout:  getDuration("BAKKIE_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("BAKKIE_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("BAKKIE_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString("BAKKIE_STORAGE_DRIVER", StoreDriverMemory)),
		},
		Blob: BlobConfig{
			Driver:      strings.ToLower(getString("BAKKIE_BLOB_DRIVER", BlobDriverDisk)),
			UploadsDir:  getString("BAKKIE_UPLOADS_DIR", "uploads"),
			MaxFileSize: getInt64("BAKKIE_MAX_FILE_SIZE", 5*1024*1024),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "bakkie_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "bakkieassets"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
		},
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "bakkie"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
			Bucket:          getString("MINIO_BUCKET", "bakkie-uploads"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", ""),
		},
		Accounts: AccountsConfig{
			BootstrapUsername: getString("BAKKIE_BOOTSTRAP_USERNAME", ""),
			BootstrapPassword: getString("BAKKIE_BOOTSTRAP_PASSWORD", ""),
			BcryptCost:        getInt("BAKKIE_BCRYPT_COST", 12),
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("BAKKIE_METRICS_PATH", "/metrics"),
		},
	}

	switch cfg.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Store.Driver)
	}

	switch cfg.Blob.Driver {
	case BlobDriverDisk, BlobDriverMinIO:
	default:
		return Config{}, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}

	if cfg.Blob.MaxFileSize <= 0 {
		return Config{}, fmt.Errorf("max file size must be positive, got %d", cfg.Blob.MaxFileSize)
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
