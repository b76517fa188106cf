package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	os.Setenv("ADMIN_PASSWORD", "hunter2")
	defer func() {
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("ADMIN_PASSWORD")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Redis.Host == "" || cfg.Admin.Password != "hunter2" {
		t.Fatalf("unexpected config values: %+v", cfg)
	}
	if cfg.Payment.VerifyDelay <= 0 {
		t.Fatalf("expected default verify delay, got %v", cfg.Payment.VerifyDelay)
	}
	if cfg.Payment.SnapshotPrefix == "" {
		t.Fatalf("expected default snapshot prefix")
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected default server port")
	}
}
