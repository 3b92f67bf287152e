package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	ThresholdsFile  string
	RateLimitRPS    float64
	RateLimitBurst  int
	LogJSON         bool
	LogLevel        string
	MaxUploadBytes  int64
}

var defaults = map[string]any{
	"PORT":                "8080",
	"ENV":                 "dev",
	"DATABASE_URL":        "",
	"CORS_ALLOW_ORIGINS":  "http://localhost:5173",
	"OBJECT_STORE":        "local",
	"LOCAL_STORE_DIR":     "./data",
	"AWS_REGION":          "",
	"S3_BUCKET":           "",
	"S3_PREFIX":           "",
	"SSE_KMS_KEY_ID":      "",
	"ATS_THRESHOLDS_FILE": "",
	"RATE_LIMIT_RPS":      5.0,
	"RATE_LIMIT_BURST":    10,
	"LOG_JSON":            true,
	"LOG_LEVEL":           "info",
	"MAX_UPLOAD_BYTES":    int64(10 << 20),
}

// Load reads configuration from environment variables, falling back to an
// optional .env file in the working directory and then to defaults.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. A missing file is not an error.
func LoadFrom(envFile string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}

	cfg := Config{
		Port:            v.GetString("PORT"),
		Env:             normalizeEnv(v.GetString("ENV")),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),
		SSEKMSKeyID:     v.GetString("SSE_KMS_KEY_ID"),
		ThresholdsFile:  strings.TrimSpace(v.GetString("ATS_THRESHOLDS_FILE")),
		RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		LogJSON:         v.GetBool("LOG_JSON"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration that would fail at startup.
func (c Config) Validate() error {
	var errs []error
	if c.Env == "production" && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}
	if c.ObjectStoreType == "s3" && c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required when OBJECT_STORE=s3"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
