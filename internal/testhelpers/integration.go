//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/service"
	"github.com/kjstillabower/weather-lookup/internal/session"
	"github.com/kjstillabower/weather-lookup/internal/traffic"
)

// IntegrationTestConfig holds configuration for integration tests.
type IntegrationTestConfig struct {
	APIKey         string
	APIURL         string
	MapsURL        string
	SessionBackend string // "in_memory" or "memcached"
	MemcachedAddr  string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	t.Helper()
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	memcachedAddr := os.Getenv("MEMCACHED_ADDRS")
	if memcachedAddr == "" {
		memcachedAddr = "localhost:11211"
	}

	return IntegrationTestConfig{
		APIKey:         apiKey,
		APIURL:         os.Getenv("WEATHER_API_URL"),
		MapsURL:        "https://www.google.com/maps",
		SessionBackend: os.Getenv("INTEGRATION_SESSION_BACKEND"),
		MemcachedAddr:  memcachedAddr,
	}
}

// SetupIntegrationService builds a LookupService against the live provider.
// Falls back to the in-memory store when memcached is requested but unavailable.
func SetupIntegrationService(t *testing.T, cfg IntegrationTestConfig) (*service.LookupService, *traffic.Tracker) {
	t.Helper()
	weatherClient, err := client.NewOpenWeatherClient(cfg.APIKey, cfg.APIURL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewOpenWeatherClient() error = %v", err)
	}

	var store session.Store = session.NewInMemoryStore()
	if cfg.SessionBackend == "memcached" {
		mc, err := session.NewMemcachedStore(cfg.MemcachedAddr, 500*time.Millisecond, 2)
		if err == nil && mc.Ping() == nil {
			store = mc
			t.Cleanup(func() { _ = mc.Close() })
			t.Logf("Using memcached session store at %s", cfg.MemcachedAddr)
		} else {
			t.Logf("memcached not available, using in-memory session store")
		}
	}

	outcomes := traffic.NewTracker(time.Hour)
	return service.NewLookupService(weatherClient, store, time.Hour, cfg.MapsURL, outcomes), outcomes
}
