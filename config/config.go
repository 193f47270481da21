package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds every runtime setting of the service.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	StorageDriver      string
	RunMigrations      bool
	CORSAllowedOrigins []string
	Media              MediaConfig
}

// MediaConfig points at the S3-compatible bucket holding player photos.
type MediaConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

// Enabled reports whether enough settings are present to build an uploader.
func (m MediaConfig) Enabled() bool {
	return m.Bucket != "" && m.AccessKeyID != "" && m.SecretAccessKey != "" && m.PublicBaseURL != ""
}

// Load reads the configuration from environment variables, loading a .env file first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecretKey: os.Getenv("JWT_SECRET_KEY"),
		Media: MediaConfig{
			Endpoint:        os.Getenv("MEDIA_ENDPOINT"),
			Region:          os.Getenv("MEDIA_REGION"),
			AccessKeyID:     os.Getenv("MEDIA_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("MEDIA_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("MEDIA_BUCKET"),
			PublicBaseURL:   os.Getenv("MEDIA_PUBLIC_BASE_URL"),
		},
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER")))
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StorageDriverPostgres
	}
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (want %q or %q)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	cfg.RunMigrations = true
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		run, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_MIGRATIONS environment variable: %w", err)
		}
		cfg.RunMigrations = run
	}

	cfg.CORSAllowedOrigins = []string{"*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSAllowedOrigins = origins
	}

	return cfg, nil
}
