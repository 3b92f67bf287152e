package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var managedKeys = []string{
	"PORT", "ENV", "DATABASE_URL", "CORS_ALLOW_ORIGINS", "OBJECT_STORE", "LOCAL_STORE_DIR",
	"AWS_REGION", "S3_BUCKET", "S3_PREFIX", "SSE_KMS_KEY_ID", "ATS_THRESHOLDS_FILE",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_JSON", "LOG_LEVEL", "MAX_UPLOAD_BYTES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "dev" || cfg.ObjectStoreType != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.LogJSON || cfg.LogLevel != "info" {
		t.Fatalf("unexpected log defaults: json=%v level=%q", cfg.LogJSON, cfg.LogLevel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/ats")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_JSON", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Env != "production" || cfg.ObjectStoreType != "s3" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.LogJSON || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected parsed values: %+v", cfg)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	body := "# local overrides\nLOCAL_STORE_DIR=/tmp/ats\nATS_THRESHOLDS_FILE=thresholds.yaml\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "7100")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LocalStoreDir != "/tmp/ats" || cfg.ThresholdsFile != "thresholds.yaml" {
		t.Fatalf("expected env file values, got %+v", cfg)
	}
	if cfg.Port != "7100" {
		t.Fatalf("expected environment to win over env file, got %q", cfg.Port)
	}
}

func TestLoadMissingEnvFileIgnored(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Env: "production", ObjectStoreType: "s3", MaxUploadBytes: 1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"DATABASE_URL", "S3_BUCKET"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	ok := Config{Env: "dev", ObjectStoreType: "local", MaxUploadBytes: 1}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
