// Package archive runs one credential -> fetch -> store pass.
package archive

import (
	"context"
	"log"

	"github.com/i474232898/weather-archive/internal/weather"
)

// CredentialResolver returns the weather API key.
type CredentialResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// PayloadFetcher returns the weather API response for a key.
type PayloadFetcher interface {
	Fetch(ctx context.Context, credential string) (weather.Payload, error)
}

// ArtifactWriter persists a payload into a bucket and returns the object key.
type ArtifactWriter interface {
	Store(ctx context.Context, bucket string, payload weather.Payload) (string, error)
}

// Job wires the three steps to a target bucket. Nothing is kept between runs.
type Job struct {
	bucket   string
	secrets  CredentialResolver
	fetcher  PayloadFetcher
	artifact ArtifactWriter
}

// NewJob creates a Job writing into bucket.
func NewJob(bucket string, secrets CredentialResolver, fetcher PayloadFetcher, artifact ArtifactWriter) *Job {
	return &Job{
		bucket:   bucket,
		secrets:  secrets,
		fetcher:  fetcher,
		artifact: artifact,
	}
}

// Run resolves the credential, fetches the weather and stores it. The first
// failing step ends the run and its error is returned as is, so a failed run
// never stores anything.
func (j *Job) Run(ctx context.Context) error {
	credential, err := j.secrets.Resolve(ctx)
	if err != nil {
		return err
	}

	payload, err := j.fetcher.Fetch(ctx, credential)
	if err != nil {
		return err
	}

	key, err := j.artifact.Store(ctx, j.bucket, payload)
	if err != nil {
		return err
	}

	log.Printf("INFO: archive: stored weather payload as %s/%s", j.bucket, key)
	return nil
}
