package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays TASKCAL_* variables onto base. The language-model key
// falls back to GEMINI_API_KEY and then OPENAI_API_KEY.
func FromEnv(base *Config) *Config {
	cfg := *base
	if v, ok := getEnvString("TASKCAL_WEEK_START"); ok {
		cfg.WeekStart = v
	}
	if v, ok := getEnvString("TASKCAL_STORAGE_BACKEND"); ok {
		cfg.Storage.Backend = v
	}
	if v, ok := getEnvString("TASKCAL_DATA_DIR"); ok {
		cfg.Storage.DataDir = v
	}
	if v, ok := getEnvString("TASKCAL_REDIS_ADDR"); ok {
		cfg.Storage.RedisAddr = v
	}
	if v, ok := getEnvBool("TASKCAL_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Alarm.DesktopNotifications = v
	}
	if v, ok := getEnvBool("TASKCAL_ALARM_DEDUP"); ok {
		cfg.Alarm.Dedup = v
	}
	if v, ok := getEnvInt("TASKCAL_ALARM_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.Alarm.IntervalSeconds = v
	}
	if v, ok := getEnvString("TASKCAL_SOUND_FILE"); ok {
		cfg.Alarm.SoundFile = v
	}
	if v, ok := getEnvString("TASKCAL_LLM_BASE_URL"); ok {
		cfg.LLM.BaseURL = v
	}
	if v, ok := getEnvString("TASKCAL_LLM_MODEL"); ok {
		cfg.LLM.Model = v
	}
	for _, name := range []string{"TASKCAL_LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"} {
		if v, ok := getEnvString(name); ok {
			cfg.LLM.APIKey = v
			break
		}
	}
	if v, ok := getEnvString("TASKCAL_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvString("TASKCAL_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	cfg.Normalize()
	return &cfg
}

func getEnvString(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
