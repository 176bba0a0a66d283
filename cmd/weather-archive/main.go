package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-archive/internal/archive"
	"github.com/i474232898/weather-archive/internal/config"
	"github.com/i474232898/weather-archive/internal/scheduler"
	"github.com/i474232898/weather-archive/internal/secrets"
	"github.com/i474232898/weather-archive/internal/store"
	"github.com/i474232898/weather-archive/internal/weather"
)

// s3FallbackRegion is used when neither S3_REGION nor the SDK chain names one.
const s3FallbackRegion = "us-east-1"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	backend, closeBackend, err := newBackend(cfg, awsCfg)
	if err != nil {
		log.Fatalf("failed to open artifact backend: %v", err)
	}
	defer closeBackend()

	artifacts, err := store.NewArtifactStore(backend, cfg.KeyScheme)
	if err != nil {
		log.Fatalf("failed to create artifact store: %v", err)
	}

	httpClient := newHTTPClient(cfg)

	job := archive.NewJob(
		cfg.Bucket,
		secrets.NewResolver(secretsmanager.NewFromConfig(awsCfg), cfg.SecretName, cfg.SecretRegion),
		weather.NewFetcher(httpClient, cfg.WeatherBaseURL, cfg.Coordinate),
		artifacts,
	)

	if cfg.FetchInterval <= 0 {
		if err := job.Run(ctx); err != nil {
			closeBackend()
			log.Fatalf("weather archive run failed: %v", err)
		}
		return
	}

	// Recurring mode: run until terminated.
	sched := scheduler.New(cfg.FetchInterval, cfg.FetchInterval, job)
	if err := sched.Start(); err != nil {
		closeBackend()
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("INFO: archiving every %s into %s", cfg.FetchInterval, cfg.Bucket)
	<-sigCtx.Done()
	log.Println("INFO: shutting down")
}

// newBackend builds the configured object backend and a func releasing it.
func newBackend(cfg *config.AppConfig, awsCfg aws.Config) (store.Backend, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendS3:
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.Region = s3Region(cfg.S3Region, o.Region)
		})
		return store.NewS3Backend(client), func() {}, nil

	case config.BackendSQLite:
		b, err := store.NewSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return b, closer(b), nil

	case config.BackendPostgres:
		b, err := store.NewPostgresBackend(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return b, closer(b), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// newHTTPClient returns the client for weather calls. Zero timeout leaves it unbounded.
func newHTTPClient(cfg *config.AppConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
}

// s3Region picks S3_REGION, then the SDK chain's region, then s3FallbackRegion.
func s3Region(configured, sdk string) string {
	if configured != "" {
		return configured
	}
	if sdk != "" {
		return sdk
	}
	return s3FallbackRegion
}

func closer(b *store.SQLBackend) func() {
	return func() {
		if err := b.Close(); err != nil {
			log.Printf("error closing artifact backend: %v", err)
		}
	}
}
