// Package store writes weather payloads as objects keyed by the time of the write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-archive/internal/weather"
)

var (
	// ErrUnknownKeyScheme is returned for a KeyScheme this package cannot produce.
	ErrUnknownKeyScheme = errors.New("unknown object key scheme")
)

// Backend is the contract every object backend (S3, SQL, in-memory) must satisfy.
// Put must overwrite an existing object with the same key.
type Backend interface {
	Put(ctx context.Context, bucket, key string, body []byte) error
}

// StorageError is returned when the backend rejects or fails a write.
type StorageError struct {
	Bucket string
	Key    string
	Err    error
}

// Error reports the backend's diagnostic unchanged.
func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// KeyScheme selects how object keys are derived from the write time.
type KeyScheme string

const (
	// KeySchemeUnix is whole Unix seconds. Two writes in the same second collide.
	KeySchemeUnix KeyScheme = "unix"
	// KeySchemeUnixMilli is Unix milliseconds.
	KeySchemeUnixMilli KeyScheme = "unix-ms"
	// KeySchemeUnixUUID is Unix seconds followed by a random UUID.
	KeySchemeUnixUUID KeyScheme = "unix-uuid"
)

// Key returns the object key for a write at t.
func (s KeyScheme) Key(t time.Time) (string, error) {
	switch s {
	case KeySchemeUnix, "":
		return strconv.FormatInt(t.Unix(), 10), nil
	case KeySchemeUnixMilli:
		return strconv.FormatInt(t.UnixMilli(), 10), nil
	case KeySchemeUnixUUID:
		return strconv.FormatInt(t.Unix(), 10) + "-" + uuid.NewString(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKeyScheme, string(s))
	}
}

// Option configures an ArtifactStore.
type Option func(*ArtifactStore)

// WithClock replaces time.Now as the source of write times.
func WithClock(now func() time.Time) Option {
	return func(s *ArtifactStore) {
		s.now = now
	}
}

// ArtifactStore serialises payloads and writes them through a Backend.
type ArtifactStore struct {
	backend Backend
	scheme  KeyScheme
	now     func() time.Time
}

// NewArtifactStore creates an ArtifactStore. An empty scheme means KeySchemeUnix.
func NewArtifactStore(backend Backend, scheme KeyScheme, opts ...Option) (*ArtifactStore, error) {
	if scheme == "" {
		scheme = KeySchemeUnix
	}
	if _, err := scheme.Key(time.Time{}); err != nil {
		return nil, err
	}

	s := &ArtifactStore{
		backend: backend,
		scheme:  scheme,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store writes payload as JSON into bucket under a key derived from the
// current time and returns that key. There is no existence check: an object
// already stored under the same key is replaced.
func (s *ArtifactStore) Store(ctx context.Context, bucket string, payload weather.Payload) (string, error) {
	key, err := s.scheme.Key(s.now())
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &StorageError{Bucket: bucket, Key: key, Err: err}
	}

	if err := s.backend.Put(ctx, bucket, key, body); err != nil {
		return "", &StorageError{Bucket: bucket, Key: key, Err: err}
	}
	return key, nil
}
