package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all syllacal configuration.
type Config struct {
	// Backend is nil when no language-model backend is configured; the
	// pipeline then goes straight to the heuristic extractor.
	Backend *Backend `yaml:"backend,omitempty"`
	Extract Extract  `yaml:"extract"`
	Output  Output   `yaml:"output"`

	LogLevel string `yaml:"log_level"`
}

// Backend holds language-model backend settings.
type Backend struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	// Endpoint overrides the provider's default API base URL (tests, proxies).
	Endpoint string `yaml:"endpoint,omitempty"`
	// Models is the ordered cascade of backend model identifiers.
	Models []string `yaml:"models"`
	// AttemptTimeout bounds a single model attempt. Default: 300s.
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
}

// Extract holds extraction pipeline settings.
type Extract struct {
	// Timezone is the IANA zone used when materializing calendar entries.
	Timezone string `yaml:"timezone"`
	// HorizonWeeks bounds weekly recurrence rules. Default: 16 (one term).
	HorizonWeeks int `yaml:"horizon_weeks"`
}

// Output holds output destination settings.
type Output struct {
	Format     string `yaml:"format"` // "stdout", "ics", or "both"
	ICSPath    string `yaml:"ics_path"`
	WebhookURL string `yaml:"webhook_url,omitempty"`
	Pretty     bool   `yaml:"pretty"`
}

// DefaultModels is the ordered backend-identifier cascade used when none is
// configured. Mirrors the provider's current vision-capable lineup.
var DefaultModels = []string{
	"models/gemini-2.5-flash",
	"models/gemini-2.0-flash",
	"models/gemini-flash-latest",
	"models/gemini-pro-latest",
	"models/gemini-2.5-pro",
}

const defaultAttemptTimeout = 300 * time.Second

// Load reads configuration from environment variables with sensible defaults.
// The backend is configured only when GEMINI_API_KEY (or
// SYLLACAL_BACKEND_API_KEY) is present.
func Load() *Config {
	cfg := &Config{
		Extract: Extract{
			Timezone:     getenv("SYLLACAL_TIMEZONE", "America/Los_Angeles"),
			HorizonWeeks: getenvInt("SYLLACAL_HORIZON_WEEKS", 16),
		},
		Output: Output{
			Format:     getenv("SYLLACAL_OUTPUT", "stdout"),
			ICSPath:    getenv("SYLLACAL_ICS_PATH", "events.ics"),
			WebhookURL: os.Getenv("SYLLACAL_WEBHOOK_URL"),
			Pretty:     os.Getenv("SYLLACAL_PRETTY") == "true",
		},
		LogLevel: getenv("SYLLACAL_LOG_LEVEL", "info"),
	}

	apiKey := os.Getenv("SYLLACAL_BACKEND_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey != "" {
		cfg.Backend = &Backend{
			Provider:       getenv("SYLLACAL_BACKEND_PROVIDER", "gemini"),
			APIKey:         apiKey,
			Endpoint:       os.Getenv("SYLLACAL_BACKEND_ENDPOINT"),
			Models:         splitList(os.Getenv("SYLLACAL_BACKEND_MODELS")),
			AttemptTimeout: getenvDuration("SYLLACAL_ATTEMPT_TIMEOUT", defaultAttemptTimeout),
		}
	}

	cfg.Normalize()
	return cfg
}

// LoadFile loads configuration from a YAML file, then applies defaults.
// If the file does not exist, a default config is written there (0600) and
// returned, so first runs leave an editable template behind.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Load()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
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

// Save writes the configuration to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
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

	tmp, err := os.CreateTemp(dir, ".syllacal-config-*.tmp")
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

// Normalize fills missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Extract.Timezone == "" {
		c.Extract.Timezone = "America/Los_Angeles"
	}
	if c.Extract.HorizonWeeks <= 0 {
		c.Extract.HorizonWeeks = 16
	}
	switch c.Output.Format {
	case "stdout", "ics", "both":
	default:
		c.Output.Format = "stdout"
	}
	if c.Output.ICSPath == "" {
		c.Output.ICSPath = "events.ics"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Backend != nil {
		if c.Backend.Provider == "" {
			c.Backend.Provider = "gemini"
		}
		if len(c.Backend.Models) == 0 {
			c.Backend.Models = append([]string(nil), DefaultModels...)
		}
		if c.Backend.AttemptTimeout <= 0 {
			c.Backend.AttemptTimeout = defaultAttemptTimeout
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
