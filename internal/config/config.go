package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-archive/internal/store"
	"github.com/i474232898/weather-archive/internal/weather"
)

var validate = validator.New()

// Storage backends selectable through STORE_BACKEND.
const (
	BackendS3       = "s3"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type AppConfig struct {
	// Bucket receives one object per run.
	Bucket string `validate:"required"`

	// Secret holding {"api_key": "..."}.
	SecretName   string `validate:"required"`
	SecretRegion string `validate:"required"`

	WeatherBaseURL string `validate:"required,url"`
	Coordinate     weather.Coordinate

	KeyScheme store.KeyScheme `validate:"oneof=unix unix-ms unix-uuid"`

	StoreBackend string `validate:"oneof=s3 sqlite postgres"`
	S3Region     string // empty = SDK default chain
	SQLitePath   string `validate:"required_if=StoreBackend sqlite"`
	DatabaseURL  string `validate:"required_if=StoreBackend postgres"`

	// HTTPTimeout bounds the weather call (0 = no timeout).
	HTTPTimeout time.Duration `validate:"gte=0"`

	// FetchInterval runs the job repeatedly when > 0; otherwise it runs once.
	FetchInterval time.Duration `validate:"gte=0"`
}

// Default returns the configuration the job runs with when nothing is overridden.
func Default() *AppConfig {
	return &AppConfig{
		Bucket:         "weatherdata1",
		SecretName:     "openweather_api_key",
		SecretRegion:   "us-east-1",
		WeatherBaseURL: weather.DefaultBaseURL,
		Coordinate:     weather.DefaultCoordinate,
		KeyScheme:      store.KeySchemeUnix,
		StoreBackend:   BackendS3,
	}
}

// Load reads configuration from environment on top of Default.
func Load() (*AppConfig, error) {
	def := Default()
	cfg := &AppConfig{}

	cfg.Bucket = getenvDefault("BUCKET_NAME", def.Bucket)
	cfg.SecretName = getenvDefault("SECRET_NAME", def.SecretName)
	cfg.SecretRegion = getenvDefault("SECRET_REGION", def.SecretRegion)

	cfg.WeatherBaseURL = getenvDefault("WEATHER_BASE_URL", def.WeatherBaseURL)
	cfg.Coordinate = weather.Coordinate{
		Lat: getenvDefault("WEATHER_LAT", def.Coordinate.Lat),
		Lon: getenvDefault("WEATHER_LON", def.Coordinate.Lon),
	}

	cfg.KeyScheme = store.KeyScheme(getenvDefault("OBJECT_KEY_SCHEME", string(def.KeyScheme)))

	cfg.StoreBackend = getenvDefault("STORE_BACKEND", def.StoreBackend)
	cfg.S3Region = os.Getenv("S3_REGION")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	timeout, err := getenvDuration("HTTP_TIMEOUT")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("FETCH_INTERVAL")
	if err != nil {
		return nil, err
	}
	cfg.FetchInterval = interval

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvDuration parses key as a time.Duration; unset means zero.
func getenvDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
