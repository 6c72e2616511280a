package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TASKCAL_WEEK_START", "TASKCAL_STORAGE_BACKEND", "TASKCAL_DATA_DIR", "TASKCAL_REDIS_ADDR",
		"TASKCAL_DESKTOP_NOTIFICATIONS", "TASKCAL_ALARM_DEDUP", "TASKCAL_ALARM_INTERVAL_SECONDS",
		"TASKCAL_SOUND_FILE", "TASKCAL_LLM_BASE_URL", "TASKCAL_LLM_MODEL", "TASKCAL_LLM_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "TASKCAL_LOG_FILE", "TASKCAL_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WeekStartDay() != time.Monday {
		t.Fatalf("expected monday week start, got %v", cfg.WeekStartDay())
	}
	if cfg.AlarmInterval() != 10*time.Second {
		t.Fatalf("unexpected alarm interval: %v", cfg.AlarmInterval())
	}
	if cfg.Alarm.Dedup {
		t.Fatal("expected alarm dedup off by default")
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Fatalf("unexpected storage backend: %q", cfg.Storage.Backend)
	}
	if cfg.LLM.Model != DefaultLLMModel || cfg.LLM.BaseURL != DefaultLLMBaseURL {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
	if cfg.LLMTimeout() != 0 {
		t.Fatalf("expected transport-default timeout, got %v", cfg.LLMTimeout())
	}
}

func TestLoadCreatesDefaultFileOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskcal", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WeekStart != "monday" {
		t.Fatalf("unexpected week start: %q", cfg.WeekStart)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("unexpected config perms: %v", info.Mode().Perm())
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "week_start: Sunday\nalarm:\n  dedup: true\nstorage:\n  backend: file\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WeekStartDay() != time.Sunday {
		t.Fatalf("expected sunday, got %v", cfg.WeekStartDay())
	}
	if !cfg.Alarm.Dedup || cfg.Storage.Backend != "file" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Alarm.IntervalSeconds != 10 || cfg.LLM.Model != DefaultLLMModel {
		t.Fatalf("expected defaults for missing fields: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("alarm: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKCAL_WEEK_START", "sunday")
	t.Setenv("TASKCAL_STORAGE_BACKEND", "redis")
	t.Setenv("TASKCAL_REDIS_ADDR", "10.0.0.2:6379")
	t.Setenv("TASKCAL_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("TASKCAL_ALARM_DEDUP", "yes")
	t.Setenv("TASKCAL_ALARM_INTERVAL_SECONDS", "5")
	t.Setenv("TASKCAL_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg := FromEnv(DefaultConfig())
	if cfg.WeekStartDay() != time.Sunday {
		t.Fatalf("expected sunday from env, got %v", cfg.WeekStartDay())
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisAddr != "10.0.0.2:6379" {
		t.Fatalf("unexpected storage overrides: %+v", cfg.Storage)
	}
	if cfg.Alarm.DesktopNotifications || !cfg.Alarm.Dedup || cfg.Alarm.IntervalSeconds != 5 {
		t.Fatalf("unexpected alarm overrides: %+v", cfg.Alarm)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "gm-key" {
		t.Fatalf("expected GEMINI_API_KEY to win over OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKCAL_ALARM_INTERVAL_SECONDS", "soon")
	t.Setenv("TASKCAL_ALARM_DEDUP", "maybe")

	cfg := FromEnv(DefaultConfig())
	if cfg.Alarm.IntervalSeconds != 10 || cfg.Alarm.Dedup {
		t.Fatalf("expected defaults to survive invalid env, got %+v", cfg.Alarm)
	}
}
