// Package config loads taskcal's YAML configuration and applies TASKCAL_*
// environment overrides on top of it.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type StorageConfig struct {
	// Backend is one of "sqlite", "file" or "redis".
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

type AlarmConfig struct {
	IntervalSeconds      int    `yaml:"interval_seconds"`
	Dedup                bool   `yaml:"dedup"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	SoundFile            string `yaml:"sound_file"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// APIKey is normally supplied through the environment rather than the file.
	APIKey         string `yaml:"api_key,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Config struct {
	// WeekStart is "monday" (default) or "sunday".
	WeekStart string        `yaml:"week_start"`
	Storage   StorageConfig `yaml:"storage"`
	Alarm     AlarmConfig   `yaml:"alarm"`
	LLM       LLMConfig     `yaml:"llm"`
	Log       LogConfig     `yaml:"log"`
}

const (
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultLLMModel   = "gemini-2.5-flash"
)

func DefaultConfig() *Config {
	return &Config{
		WeekStart: "monday",
		Storage: StorageConfig{
			Backend:     "sqlite",
			DataDir:     filepath.Join(stateHome(), "taskcal"),
			RedisAddr:   "127.0.0.1:6379",
			RedisPrefix: "taskcal:",
		},
		Alarm: AlarmConfig{
			IntervalSeconds:      10,
			Dedup:                false,
			DesktopNotifications: true,
		},
		LLM: LLMConfig{
			BaseURL: DefaultLLMBaseURL,
			Model:   DefaultLLMModel,
		},
		Log: LogConfig{
			File:  filepath.Join(stateHome(), "taskcal", "taskcal.log"),
			Level: "info",
		},
	}
}

// Normalize fills zero values so partial files behave like the defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	switch strings.ToLower(c.WeekStart) {
	case "monday", "sunday":
		c.WeekStart = strings.ToLower(c.WeekStart)
	default:
		c.WeekStart = def.WeekStart
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = def.Storage.DataDir
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = def.Storage.RedisAddr
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = def.Storage.RedisPrefix
	}
	if c.Alarm.IntervalSeconds <= 0 {
		c.Alarm.IntervalSeconds = def.Alarm.IntervalSeconds
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = def.LLM.BaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.TimeoutSeconds < 0 {
		c.LLM.TimeoutSeconds = 0
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

func (c *Config) AlarmInterval() time.Duration {
	return time.Duration(c.Alarm.IntervalSeconds) * time.Second
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// DefaultPath is $XDG_CONFIG_HOME/taskcal/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			base = dir
		} else {
			base = "."
		}
	}
	return filepath.Join(base, "taskcal", "config.yaml")
}

// Load reads the YAML file at path. On first run the file does not exist:
// the defaults are written there with 0600 permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically via a temp file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".taskcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func stateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}
	return "."
}
