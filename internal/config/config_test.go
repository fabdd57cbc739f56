package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
env: prod
http:
  addr: ":9090"
classifier:
  model: gpt-4o
  timeout: 3s
  calls_per_window: 10
  rate_window: 30s
ws:
  send_buffer: 128
forum:
  page_size_default: 10
  title_max_len: 120
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %s", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Classifier.Model != "gpt-4o" {
		t.Fatalf("unexpected classifier model: %s", cfg.Classifier.Model)
	}
	if cfg.Classifier.Timeout != 3*time.Second {
		t.Fatalf("unexpected classifier timeout: %s", cfg.Classifier.Timeout)
	}
	if cfg.Classifier.CallsPerWindow != 10 {
		t.Fatalf("unexpected classifier calls/window: %d", cfg.Classifier.CallsPerWindow)
	}
	if cfg.Classifier.RateWindow != 30*time.Second {
		t.Fatalf("unexpected classifier rate window: %s", cfg.Classifier.RateWindow)
	}
	if cfg.WS.SendBuffer != 128 {
		t.Fatalf("unexpected ws send buffer: %d", cfg.WS.SendBuffer)
	}
	if cfg.Forum.PageSizeDefault != 10 {
		t.Fatalf("unexpected page size default: %d", cfg.Forum.PageSizeDefault)
	}
	if cfg.Forum.TitleMaxLen != 120 {
		t.Fatalf("unexpected title max len: %d", cfg.Forum.TitleMaxLen)
	}

	if cfg.Forum.PageSizeMax != 100 {
		t.Fatalf("forum.page_size_max default should stay 100")
	}
	if cfg.Forum.BodyMaxLen != 10000 {
		t.Fatalf("forum.body_max_len default should stay 10000")
	}
	if cfg.WS.PongWait != 60*time.Second {
		t.Fatalf("ws.pong_wait default should stay 60s")
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("auth.jwt_access_ttl default should stay 15m")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Classifier.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected default classifier model: %s", cfg.Classifier.Model)
	}
	if cfg.Classifier.CallsPerWindow != 60 {
		t.Fatalf("unexpected default classifier calls/window: %d", cfg.Classifier.CallsPerWindow)
	}
	if cfg.Classifier.RateWindow != time.Minute {
		t.Fatalf("unexpected default classifier rate window: %s", cfg.Classifier.RateWindow)
	}
	if cfg.WS.SendBuffer != 64 {
		t.Fatalf("unexpected default ws send buffer: %d", cfg.WS.SendBuffer)
	}
	if cfg.Forum.PageSizeDefault != 20 || cfg.Forum.PageSizeMax != 100 {
		t.Fatalf("unexpected page size defaults: %d/%d", cfg.Forum.PageSizeDefault, cfg.Forum.PageSizeMax)
	}
	if cfg.Forum.TitleMaxLen != 200 {
		t.Fatalf("unexpected default title max len: %d", cfg.Forum.TitleMaxLen)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("CLASSIFIER_API_KEY", "sk-test")
	t.Setenv("CLASSIFIER_CALLS_PER_WINDOW", "5")
	t.Setenv("CLASSIFIER_RATE_WINDOW", "10s")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr from env: %s", cfg.HTTP.Addr)
	}
	if cfg.Classifier.APIKey != "sk-test" {
		t.Fatalf("unexpected classifier api key from env: %s", cfg.Classifier.APIKey)
	}
	if cfg.Classifier.CallsPerWindow != 5 {
		t.Fatalf("unexpected classifier calls/window from env: %d", cfg.Classifier.CallsPerWindow)
	}
	if cfg.Classifier.RateWindow != 10*time.Second {
		t.Fatalf("unexpected classifier rate window from env: %s", cfg.Classifier.RateWindow)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected jwt secret from env: %s", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsMalformedEnvDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CLASSIFIER_TIMEOUT", "not-a-duration")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for malformed CLASSIFIER_TIMEOUT")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"CLASSIFIER_API_KEY",
		"CLASSIFIER_BASE_URL",
		"CLASSIFIER_MODEL",
		"CLASSIFIER_TIMEOUT",
		"CLASSIFIER_CALLS_PER_WINDOW",
		"CLASSIFIER_RATE_WINDOW",
	} {
		t.Setenv(key, "")
	}
}
