package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kjstillabower/weather-lookup/internal/client"
)

const minimalEnvYAML = `
server:
  port: "8080"
weather_api:
  url: "https://api.example.com"
`

// setup writes config files into a temp dir, chdirs into it, and clears env overrides.
func setup(t *testing.T, envYAML, secretsYAML string) {
	t.Helper()
	t.Setenv("WEATHER_API_KEY", "")
	t.Setenv("ENV_NAME", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("MEMCACHED_ADDRS", "")

	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	if envYAML != "" {
		if err := os.WriteFile(filepath.Join(configDir, "dev.yaml"), []byte(envYAML), 0644); err != nil {
			t.Fatalf("write config file: %v", err)
		}
	}
	if secretsYAML != "" {
		if err := os.WriteFile(filepath.Join(configDir, "secrets.yaml"), []byte(secretsYAML), 0644); err != nil {
			t.Fatalf("write secrets file: %v", err)
		}
	}

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
}

func TestLoad_FailsWhenNoAPIKey(t *testing.T) {
	setup(t, minimalEnvYAML, "")

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() expected error when no WEATHER_API_KEY and no secrets file, got nil")
	}
	if cfg != nil {
		t.Fatalf("Load() expected nil config on error, got %+v", cfg)
	}
	if !strings.Contains(err.Error(), "WEATHER_API_KEY") {
		t.Errorf("Load() error = %v, want message containing WEATHER_API_KEY", err)
	}
}

func TestLoad_SucceedsWithSecretsFile(t *testing.T) {
	setup(t, minimalEnvYAML, "weather_api_key: key-from-secrets-file\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WeatherAPIKey != "key-from-secrets-file" {
		t.Errorf("WeatherAPIKey = %q, want key from secrets file", cfg.WeatherAPIKey)
	}
}

func TestLoad_EnvVarOverridesSecrets(t *testing.T) {
	setup(t, minimalEnvYAML, "weather_api_key: key-from-secrets-file\n")
	t.Setenv("WEATHER_API_KEY", "key-from-env-var")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WeatherAPIKey != "key-from-env-var" {
		t.Errorf("WeatherAPIKey = %q, want key-from-env-var", cfg.WeatherAPIKey)
	}
}

func TestLoad_EnvFileNotFound(t *testing.T) {
	setup(t, "", "")
	t.Setenv("ENV_NAME", "nonexistent")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load() error = %v, want config file not found", err)
	}
}

func TestLoad_InvalidConfigYAML(t *testing.T) {
	setup(t, "server: [[[", "weather_api_key: key\n")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Errorf("Load() error = %v, want parse config file error", err)
	}
}

func TestLoad_InvalidSecretsYAML(t *testing.T) {
	setup(t, minimalEnvYAML, "not valid: yaml: [[[")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse secrets file") {
		t.Errorf("Load() error = %v, want parse secrets file error", err)
	}
}

// TestLoad_Defaults verifies defaults for every field left out of the YAML.
func TestLoad_Defaults(t *testing.T) {
	setup(t, "{}\n", "weather_api_key: key\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.WeatherAPIURL != client.DefaultAPIURL {
		t.Errorf("WeatherAPIURL = %q, want %q", cfg.WeatherAPIURL, client.DefaultAPIURL)
	}
	if cfg.WeatherAPITimeout != 0 {
		t.Errorf("WeatherAPITimeout = %v, want 0 (no timeout)", cfg.WeatherAPITimeout)
	}
	if cfg.MapsURL != "https://www.google.com/maps" {
		t.Errorf("MapsURL = %q", cfg.MapsURL)
	}
	if cfg.StaticDir != "web/static" {
		t.Errorf("StaticDir = %q", cfg.StaticDir)
	}
	if cfg.SessionBackend != "in_memory" {
		t.Errorf("SessionBackend = %q, want in_memory", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.MemcachedAddrs != "localhost:11211" {
		t.Errorf("MemcachedAddrs = %q", cfg.MemcachedAddrs)
	}
	if cfg.MemcachedMaxIdleConns != 2 {
		t.Errorf("MemcachedMaxIdleConns = %d, want 2", cfg.MemcachedMaxIdleConns)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.ShutdownInFlightCheckInterval != 100*time.Millisecond {
		t.Errorf("ShutdownInFlightCheckInterval = %v, want 100ms", cfg.ShutdownInFlightCheckInterval)
	}
	if cfg.HealthWindow != 5*time.Minute {
		t.Errorf("HealthWindow = %v, want 5m", cfg.HealthWindow)
	}
}

func TestLoad_FileValues(t *testing.T) {
	setup(t, `
server:
  port: "9090"
weather_api:
  timeout: "3s"
maps:
  url: "https://maps.example.com/"
session:
  backend: "Memcached"
  ttl: "2h"
  memcached:
    addrs: "mc1:11211,mc2:11211"
    timeout: "1s"
    max_idle_conns: 8
`, "weather_api_key: key\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.WeatherAPITimeout != 3*time.Second {
		t.Errorf("WeatherAPITimeout = %v, want 3s", cfg.WeatherAPITimeout)
	}
	if cfg.MapsURL != "https://maps.example.com" {
		t.Errorf("MapsURL = %q, want trailing slash trimmed", cfg.MapsURL)
	}
	if cfg.SessionBackend != "memcached" {
		t.Errorf("SessionBackend = %q, want memcached", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
	if cfg.MemcachedAddrs != "mc1:11211,mc2:11211" || cfg.MemcachedTimeout != time.Second || cfg.MemcachedMaxIdleConns != 8 {
		t.Errorf("memcached = (%q, %v, %d)", cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
	}
}

func TestLoad_EnvOverridesSession(t *testing.T) {
	setup(t, minimalEnvYAML, "weather_api_key: key\n")
	t.Setenv("SESSION_BACKEND", "memcached")
	t.Setenv("MEMCACHED_ADDRS", "cache:11211")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionBackend != "memcached" || cfg.MemcachedAddrs != "cache:11211" {
		t.Errorf("session = (%q, %q), want env values", cfg.SessionBackend, cfg.MemcachedAddrs)
	}
}

func TestLoad_InvalidDurationFallsBackToDefault(t *testing.T) {
	setup(t, `
session:
  ttl: "not-a-duration"
shutdown:
  timeout: "-5s"
`, "weather_api_key: key\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want default 24h", cfg.SessionTTL)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 30s", cfg.ShutdownTimeout)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative timeout", "weather_api:\n  timeout: \"-1s\"\n", "weather_api.timeout"},
		{"bad session backend", "session:\n  backend: redis\n", "session.backend"},
		{"bad maps url", "maps:\n  url: \"ftp://maps\"\n", "maps.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.yaml, "weather_api_key: key\n")
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want message containing %q", err, tt.want)
			}
		})
	}
}

func TestParseDurationOrZero(t *testing.T) {
	tests := []struct {
		in   string
		def  time.Duration
		want time.Duration
	}{
		{"", time.Second, time.Second},
		{"  ", time.Second, time.Second},
		{"bogus", time.Second, time.Second},
		{"0s", time.Second, 0},
		{"250ms", time.Second, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := parseDurationOrZero(tt.in, tt.def); got != tt.want {
			t.Errorf("parseDurationOrZero(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
