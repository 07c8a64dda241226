package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors.
const (
	StorageFlatfile = "flatfile"
	StoragePgsql    = "pgsql"

	BlobFS    = "fs"
	BlobMinio = "minio"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Entry storage strategy: flatfile (serialized JSON list under DataDir)
	// or pgsql (PostgreSQL via DatabaseURL).
	StorageBackend string
	DataDir        string
	DatabaseURL    string

	// Blob storage strategy: fs (files under DataDir) or minio.
	BlobBackend   string
	PublicBaseURL string

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioURLTTL    time.Duration

	AnalysisDelay   time.Duration
	UploadRateLimit string
	MaxUploadBytes  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", StorageFlatfile)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("BLOB_BACKEND", BlobFS)
	viper.SetDefault("PUBLIC_BASE_URL", "")
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "")
	viper.SetDefault("MINIO_SECRET_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "moodreel-media")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_URL_TTL", "15m")
	viper.SetDefault("ANALYSIS_DELAY", "500ms")
	viper.SetDefault("UPLOAD_RATE_LIMIT", "30-M")
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(100*1024*1024))

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DataDir = viper.GetString("DATA_DIR")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.PublicBaseURL = viper.GetString("PUBLIC_BASE_URL")
	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")

	cfg.StorageBackend = viper.GetString("STORAGE_BACKEND")
	switch cfg.StorageBackend {
	case StorageFlatfile, StoragePgsql:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", cfg.StorageBackend, StorageFlatfile, StoragePgsql)
	}
	if cfg.StorageBackend == StoragePgsql && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("STORAGE_BACKEND=pgsql requires PGSQL_URL to be set")
	}

	cfg.BlobBackend = viper.GetString("BLOB_BACKEND")
	switch cfg.BlobBackend {
	case BlobFS, BlobMinio:
	default:
		return nil, fmt.Errorf("unknown BLOB_BACKEND %q (want %q or %q)", cfg.BlobBackend, BlobFS, BlobMinio)
	}

	cfg.MinioEndpoint = viper.GetString("MINIO_ENDPOINT")
	cfg.MinioAccessKey = viper.GetString("MINIO_ACCESS_KEY")
	cfg.MinioSecretKey = viper.GetString("MINIO_SECRET_KEY")
	cfg.MinioBucket = viper.GetString("MINIO_BUCKET")
	cfg.MinioUseSSL = viper.GetBool("MINIO_USE_SSL")
	if cfg.BlobBackend == BlobMinio && cfg.MinioEndpoint == "" {
		return nil, fmt.Errorf("BLOB_BACKEND=minio requires MINIO_ENDPOINT to be set")
	}

	ttlStr := viper.GetString("MINIO_URL_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 15 * time.Minute
		log.Printf("Warning: Invalid value for MINIO_URL_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.MinioURLTTL = ttl

	delayStr := viper.GetString("ANALYSIS_DELAY")
	delay, err := time.ParseDuration(delayStr)
	if err != nil {
		delay = 500 * time.Millisecond
		log.Printf("Warning: Invalid value for ANALYSIS_DELAY ('%s'). Defaulting to %s.\n", delayStr, delay)
	}
	cfg.AnalysisDelay = delay

	return cfg, nil
}
