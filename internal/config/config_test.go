package config

import (
	"testing"
	"time"

	"github.com/i474232898/weather-archive/internal/store"
	"github.com/i474232898/weather-archive/internal/weather"
)

var envKeys = []string{
	"BUCKET_NAME", "SECRET_NAME", "SECRET_REGION", "WEATHER_BASE_URL", "WEATHER_LAT", "WEATHER_LON",
	"OBJECT_KEY_SCHEME", "STORE_BACKEND", "S3_REGION", "SQLITE_PATH", "DATABASE_URL",
	"HTTP_TIMEOUT", "FETCH_INTERVAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

// TestLoadDefaults verifies an empty environment yields the fixed job settings.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Bucket != "weatherdata1" {
		t.Errorf("expected bucket weatherdata1, got %q", cfg.Bucket)
	}
	if cfg.SecretName != "openweather_api_key" || cfg.SecretRegion != "us-east-1" {
		t.Errorf("unexpected secret %q in %q", cfg.SecretName, cfg.SecretRegion)
	}
	if cfg.Coordinate != (weather.Coordinate{Lat: "40.7143", Lon: "-74.006"}) {
		t.Errorf("unexpected coordinate %+v", cfg.Coordinate)
	}
	if cfg.WeatherBaseURL != "https://api.openweathermap.org/data/2.5/weather" {
		t.Errorf("unexpected base url %q", cfg.WeatherBaseURL)
	}
	if cfg.KeyScheme != store.KeySchemeUnix || cfg.StoreBackend != BackendS3 {
		t.Errorf("unexpected storage settings %q %q", cfg.KeyScheme, cfg.StoreBackend)
	}
	if cfg.HTTPTimeout != 0 || cfg.FetchInterval != 0 {
		t.Errorf("expected no timeout and single run, got %v %v", cfg.HTTPTimeout, cfg.FetchInterval)
	}
	if *cfg != *Default() {
		t.Errorf("Load with empty env differs from Default: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUCKET_NAME", "archive")
	t.Setenv("WEATHER_LAT", "51.5072")
	t.Setenv("WEATHER_LON", "-0.1276")
	t.Setenv("OBJECT_KEY_SCHEME", "unix-uuid")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/weather.db")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("FETCH_INTERVAL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bucket != "archive" {
		t.Errorf("expected bucket archive, got %q", cfg.Bucket)
	}
	if cfg.Coordinate.Lat != "51.5072" || cfg.Coordinate.Lon != "-0.1276" {
		t.Errorf("unexpected coordinate %+v", cfg.Coordinate)
	}
	if cfg.KeyScheme != store.KeySchemeUnixUUID {
		t.Errorf("unexpected key scheme %q", cfg.KeyScheme)
	}
	if cfg.StoreBackend != BackendSQLite || cfg.SQLitePath != "/tmp/weather.db" {
		t.Errorf("unexpected backend %q %q", cfg.StoreBackend, cfg.SQLitePath)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.FetchInterval != 15*time.Minute {
		t.Errorf("unexpected durations %v %v", cfg.HTTPTimeout, cfg.FetchInterval)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad interval", map[string]string{"FETCH_INTERVAL": "often"}},
		{"bad timeout", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"negative interval", map[string]string{"FETCH_INTERVAL": "-1m"}},
		{"latitude out of range", map[string]string{"WEATHER_LAT": "91.0"}},
		{"longitude not a number", map[string]string{"WEATHER_LON": "west"}},
		{"unknown backend", map[string]string{"STORE_BACKEND": "ftp"}},
		{"sqlite without path", map[string]string{"STORE_BACKEND": "sqlite"}},
		{"postgres without dsn", map[string]string{"STORE_BACKEND": "postgres"}},
		{"unknown key scheme", map[string]string{"OBJECT_KEY_SCHEME": "rfc3339"}},
		{"bad base url", map[string]string{"WEATHER_BASE_URL": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
