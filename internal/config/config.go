package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	BaseURL     string // public base URL embedded in share links
	CORSOrigins string
	JWKSURL     string
	// Blob store (S3 or S3-compatible)
	BlobBucket    string
	BlobKeyPrefix string
	BlobRegion    string
	BlobEndpoint  string // non-empty for S3-compatible stores
	BlobAccessKey string
	BlobSecretKey string
	BlobPublicURL string // base URL objects are served from; defaults to the bucket endpoint
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWKSURL:       getEnv("JWKS_URL", ""),
		BlobBucket:    getEnv("BLOB_BUCKET", ""),
		BlobKeyPrefix: getEnv("BLOB_KEY_PREFIX", "uploads/"),
		BlobRegion:    getEnv("BLOB_REGION", "us-east-1"),
		BlobEndpoint:  getEnv("BLOB_ENDPOINT", ""),
		BlobAccessKey: getEnv("BLOB_ACCESS_KEY", ""),
		BlobSecretKey: getEnv("BLOB_SECRET_KEY", ""),
		BlobPublicURL: getEnv("BLOB_PUBLIC_URL", ""),
		Debug:         getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
