package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("unexpected EndpointAddr: %s", cfg.EndpointAddr)
	}
	if cfg.MaxUploadBytes != 350*1024*1024 {
		t.Fatalf("unexpected MaxUploadBytes: %d", cfg.MaxUploadBytes)
	}
	if cfg.DownloadURLTTL != 5*time.Minute {
		t.Fatalf("unexpected DownloadURLTTL: %s", cfg.DownloadURLTTL)
	}
	if cfg.DatabaseDSN == "" || cfg.S3Bucket == "" {
		t.Fatal("defaults must cover DSN and bucket")
	}
	if cfg.RedisAddr != "" {
		t.Fatal("cache must be disabled by default")
	}
}
