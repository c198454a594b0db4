package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/weather-lookup/internal/client"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort string

	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration // 0 = wait for the upstream indefinitely

	MapsURL   string
	StaticDir string

	SessionBackend string // "in_memory" or "memcached"
	SessionTTL     time.Duration

	MemcachedAddrs        string
	MemcachedTimeout      time.Duration
	MemcachedMaxIdleConns int

	ShutdownTimeout               time.Duration
	ShutdownInFlightTimeout       time.Duration
	ShutdownInFlightCheckInterval time.Duration

	HealthWindow time.Duration
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"weather_api"`

	Maps struct {
		URL string `yaml:"url"`
	} `yaml:"maps"`

	Static struct {
		Dir string `yaml:"dir"`
	} `yaml:"static"`

	Session struct {
		Backend   string `yaml:"backend"`
		TTL       string `yaml:"ttl"`
		Memcached struct {
			Addrs        string `yaml:"addrs"`
			Timeout      string `yaml:"timeout"`
			MaxIdleConns int    `yaml:"max_idle_conns"`
		} `yaml:"memcached"`
	} `yaml:"session"`

	Shutdown struct {
		Timeout               string `yaml:"timeout"`
		InFlightTimeout       string `yaml:"in_flight_timeout"`
		InFlightCheckInterval string `yaml:"in_flight_check_interval"`
	} `yaml:"shutdown"`

	Health struct {
		Window string `yaml:"window"`
	} `yaml:"health"`
}

type secretsFile struct {
	WeatherAPIKey string `yaml:"weather_api_key"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev) and config/secrets.yaml.
// API key comes from WEATHER_API_KEY env or secrets file. Call from project root.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = fc.Server.Port
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.WeatherAPIKey, err = loadAPIKey(cwd)
	if err != nil {
		return nil, err
	}

	cfg.WeatherAPIURL = fc.WeatherAPI.URL
	if cfg.WeatherAPIURL == "" {
		cfg.WeatherAPIURL = client.DefaultAPIURL
	}
	cfg.WeatherAPITimeout = parseDurationOrZero(fc.WeatherAPI.Timeout, 0)

	cfg.MapsURL = strings.TrimRight(strings.TrimSpace(fc.Maps.URL), "/")
	if cfg.MapsURL == "" {
		cfg.MapsURL = "https://www.google.com/maps"
	}
	cfg.StaticDir = fc.Static.Dir
	if cfg.StaticDir == "" {
		cfg.StaticDir = "web/static"
	}

	cfg.SessionBackend = envOr("SESSION_BACKEND", fc.Session.Backend, "in_memory")
	cfg.SessionBackend = strings.ToLower(cfg.SessionBackend)
	cfg.SessionTTL = parseDuration(fc.Session.TTL, 24*time.Hour)
	cfg.MemcachedAddrs = envOr("MEMCACHED_ADDRS", fc.Session.Memcached.Addrs, "localhost:11211")
	cfg.MemcachedTimeout = parseDuration(fc.Session.Memcached.Timeout, 500*time.Millisecond)
	cfg.MemcachedMaxIdleConns = fc.Session.Memcached.MaxIdleConns
	if cfg.MemcachedMaxIdleConns <= 0 {
		cfg.MemcachedMaxIdleConns = 2
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)
	cfg.ShutdownInFlightTimeout = parseDuration(fc.Shutdown.InFlightTimeout, 10*time.Second)
	cfg.ShutdownInFlightCheckInterval = parseDuration(fc.Shutdown.InFlightCheckInterval, 100*time.Millisecond)

	cfg.HealthWindow = parseDuration(fc.Health.Window, 5*time.Minute)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAPIKey returns WEATHER_API_KEY from env, falling back to config/secrets.yaml.
func loadAPIKey(cwd string) (string, error) {
	if key := os.Getenv("WEATHER_API_KEY"); key != "" {
		return key, nil
	}
	secretsPath := filepath.Join(cwd, "config", "secrets.yaml")
	secretsData, err := os.ReadFile(secretsPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read secrets file: %w", err)
	}
	if err == nil {
		var sec secretsFile
		if err := yaml.Unmarshal(secretsData, &sec); err != nil {
			return "", fmt.Errorf("parse secrets file: %w", err)
		}
		if sec.WeatherAPIKey != "" {
			return sec.WeatherAPIKey, nil
		}
	}
	return "", fmt.Errorf("WEATHER_API_KEY required (set env or config/secrets.yaml weather_api_key)")
}

// envOr returns the trimmed env var if set, else the trimmed file value, else def.
func envOr(envKey, fileVal, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fileVal); v != "" {
		return v
	}
	return def
}

// parseDuration parses a duration string and returns defaultVal if parsing fails or result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d := parseDurationOrZero(s, defaultVal)
	if d <= 0 {
		return defaultVal
	}
	return d
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Zero and negative durations are returned as-is.
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout < 0 {
		return fmt.Errorf("weather_api.timeout must not be negative")
	}
	if !strings.HasPrefix(cfg.MapsURL, "http://") && !strings.HasPrefix(cfg.MapsURL, "https://") {
		return fmt.Errorf("maps.url must be an http(s) URL, got %q", cfg.MapsURL)
	}
	switch cfg.SessionBackend {
	case "in_memory", "memcached":
		// valid
	default:
		return fmt.Errorf("session.backend must be in_memory or memcached, got %q", cfg.SessionBackend)
	}
	return nil
}
