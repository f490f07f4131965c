package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile lives in the user's home directory.
const DefaultConfigFile = ".questforge.yml"

type Config struct {
	DBPath string      `yaml:"db_path"`
	Log    LogConfig   `yaml:"log"`
	Coach  CoachConfig `yaml:"coach"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// CoachConfig points at an OpenAI-compatible streaming chat endpoint.
type CoachConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether the coach has somewhere to send requests.
func (c CoachConfig) Enabled() bool { return strings.TrimSpace(c.Endpoint) != "" }

func Default() Config {
	return Config{
		Log: LogConfig{Level: "warn"},
		Coach: CoachConfig{
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
	}
}

// DefaultPath returns ~/.questforge.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DefaultConfigFile), nil
}

// Load builds the configuration in layers: defaults, then the YAML file at path
// (skipped when missing), then .env files, then QF_* environment variables.
// With no envFiles, ./.env is read if present.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load env file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides cfg from QF_* variables. Empty or malformed values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("QF_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("QF_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v, ok := getEnvBool("QF_DEBUG"); ok {
		cfg.Log.Debug = v
	}
	if v := os.Getenv("QF_COACH_URL"); v != "" {
		cfg.Coach.Endpoint = v
	}
	if v := os.Getenv("QF_COACH_KEY"); v != "" {
		cfg.Coach.APIKey = v
	}
	if v := os.Getenv("QF_COACH_MODEL"); v != "" {
		cfg.Coach.Model = v
	}
	if v := os.Getenv("QF_COACH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Coach.Timeout = d
		}
	}
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
