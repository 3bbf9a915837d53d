// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// ReferenceDataConfig provides the location of the postcode reference dataset.
type ReferenceDataConfig interface {
	GetReferenceDatasetPath() string
	GetReferenceDatasetBucket() string
	GetReferenceDatasetObject() string
	IsReferenceDatasetRemote() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}

// ScoringConfig provides settings for the quality scoring service.
type ScoringConfig interface {
	GetPhoneDefaultRegion() string
	GetBatchMaxRecords() int
	GetScoreWorkers() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	RateLimitRPS           float64
	RateLimitBurst         int
	ReferenceDatasetPath   string
	ReferenceDatasetBucket string
	ReferenceDatasetObject string
	MinIOEndpoint          string
	MinIOAccessKey         string
	MinIOSecretKey         string
	MinIOUseSSL            bool
	PhoneDefaultRegion     string
	BatchMaxRecords        int
	ScoreWorkers           int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// ReferenceDataConfig implementation
func (c *Config) GetReferenceDatasetPath() string   { return c.ReferenceDatasetPath }
func (c *Config) GetReferenceDatasetBucket() string { return c.ReferenceDatasetBucket }
func (c *Config) GetReferenceDatasetObject() string { return c.ReferenceDatasetObject }
func (c *Config) IsReferenceDatasetRemote() bool {
	return c.IsMinIOEnabled() && c.ReferenceDatasetBucket != "" && c.ReferenceDatasetObject != ""
}

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) IsMinIOEnabled() bool      { return c.MinIOEndpoint != "" }

// ScoringConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }
func (c *Config) GetBatchMaxRecords() int       { return c.BatchMaxRecords }
func (c *Config) GetScoreWorkers() int          { return c.ScoreWorkers }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:           mustFloat64(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:         mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		ReferenceDatasetPath:   getEnv("REFERENCE_DATASET_PATH", "data/PC62023NL.csv"),
		ReferenceDatasetBucket: getEnv("REFERENCE_DATASET_BUCKET", ""),
		ReferenceDatasetObject: getEnv("REFERENCE_DATASET_OBJECT", "PC62023NL.csv"),
		MinIOEndpoint:          getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:         getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:         getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:            strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		PhoneDefaultRegion:     strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "NL")),
		BatchMaxRecords:        mustInt(getEnv("BATCH_MAX_RECORDS", "100")),
		ScoreWorkers:           mustInt(getEnv("SCORE_WORKERS", "4")),
	}

	if cfg.ReferenceDatasetPath == "" && !cfg.IsReferenceDatasetRemote() {
		return nil, fmt.Errorf("REFERENCE_DATASET_PATH is required when no REFERENCE_DATASET_BUCKET is configured")
	}
	if cfg.ReferenceDatasetBucket != "" && !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required when REFERENCE_DATASET_BUCKET is set")
	}
	if len(cfg.PhoneDefaultRegion) != 2 {
		return nil, fmt.Errorf("PHONE_DEFAULT_REGION must be a two-letter region code, got %q", cfg.PhoneDefaultRegion)
	}
	if cfg.BatchMaxRecords < 1 {
		return nil, fmt.Errorf("BATCH_MAX_RECORDS must be positive")
	}
	if cfg.ScoreWorkers < 1 {
		return nil, fmt.Errorf("SCORE_WORKERS must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
