package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseJson(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	content := `{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://json",
		"access_token_validity_minutes": 45,
		"max_upload_bytes": 1048576,
		"download_url_ttl_minutes": 10,
		"redis_addr": "redis:6379"
	}`
	path := filepath.Join(t.TempDir(), "conf.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.EndpointAddr != ":7070" {
		t.Fatalf("unexpected EndpointAddr: %s", cfg.EndpointAddr)
	}
	if cfg.DatabaseDSN != "postgres://json" {
		t.Fatalf("unexpected DatabaseDSN: %s", cfg.DatabaseDSN)
	}
	if cfg.AccessTokenValidityDuration != 45*time.Minute {
		t.Fatalf("unexpected token validity: %s", cfg.AccessTokenValidityDuration)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("unexpected MaxUploadBytes: %d", cfg.MaxUploadBytes)
	}
	if cfg.DownloadURLTTL != 10*time.Minute {
		t.Fatalf("unexpected DownloadURLTTL: %s", cfg.DownloadURLTTL)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected RedisAddr: %s", cfg.RedisAddr)
	}
	// Untouched fields keep their defaults.
	if cfg.S3Bucket != "files" {
		t.Fatalf("default bucket lost: %s", cfg.S3Bucket)
	}
}

func TestParseJson_NoFileFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"server"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("defaults must survive: %s", cfg.EndpointAddr)
	}
}
