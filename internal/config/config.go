package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"
)

type Config struct {
	Env        string
	LogLevel   string
	ListenAddr string

	DBType       string
	DBDSN        string
	FileAccounts string
	FileProfiles string
	FileCheckins string
	FileTasks    string
	FileContent  string

	JWTSecret  string
	SessionTTL time.Duration

	AIAPIKey     string
	AIBaseURL    string
	AIModel      string
	AITimeout    time.Duration
	AIMaxRetries int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:          getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ListenAddr:   getEnv("LISTEN_ADDR", ":8088"),
			DBType:       getEnv("STORAGE_BACKEND", "file"),
			DBDSN:        getEnv("POSTGRES_DSN", ""),
			FileAccounts: getEnv("ACCOUNTS_FILE", "data/accounts.json"),
			FileProfiles: getEnv("PROFILES_FILE", "data/profiles.json"),
			FileCheckins: getEnv("CHECKINS_FILE", "data/checkins.json"),
			FileTasks:    getEnv("TASKS_FILE", "data/tasks.json"),
			FileContent:  getEnv("CONTENT_FILE", "data/educational_content.json"),
			JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
			SessionTTL:   getEnvDuration("SESSION_TTL_HOURS", 24) * time.Hour,
			AIAPIKey:     getEnv("AI_API_KEY", ""),
			AIBaseURL:    getEnv("AI_BASE_URL", "https://api.openai.com"),
			AIModel:      getEnv("AI_MODEL", "gpt-4o-mini"),
			AITimeout:    getEnvDuration("AI_TIMEOUT_SECONDS", 30) * time.Second,
			AIMaxRetries: getEnvInt("AI_MAX_RETRIES", 2),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileAccounts == "" || c.FileProfiles == "" || c.FileCheckins == "" || c.FileTasks == "") {
		return errors.New("File storage requires ACCOUNTS_FILE, PROFILES_FILE, CHECKINS_FILE and TASKS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env == "production" && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback))
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
