package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: "9090"
  allowed_origins: ["http://localhost:3000"]
content:
  quiz_url: http://example.test/quiz.json
quiz:
  feedback_delay: 3s
redis:
  addr: localhost:6379
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || len(cfg.Server.AllowedOrigins) != 1 {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Content.QuizURL != "http://example.test/quiz.json" {
		t.Fatalf("unexpected quiz url %q", cfg.Content.QuizURL)
	}
	if cfg.Content.ResultsURL != DefaultResultsURL {
		t.Fatalf("expected default results url, got %q", cfg.Content.ResultsURL)
	}
	if d := Duration(cfg.Quiz.FeedbackDelay, time.Second); d != 3*time.Second {
		t.Fatalf("unexpected feedback delay %s", d)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Quiz.FeedbackDelay != "300ms" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDurationFallback(t *testing.T) {
	if d := Duration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for empty, got %s", d)
	}
	if d := Duration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for invalid, got %s", d)
	}
	if d := Duration("250ms", time.Minute); d != 250*time.Millisecond {
		t.Fatalf("unexpected parse %s", d)
	}
}
