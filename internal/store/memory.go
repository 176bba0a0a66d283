package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	// ErrNotFound is returned when no object exists under a key.
	ErrNotFound = errors.New("object not found")

	// ErrNoSuchBucket is returned by a MemoryBackend created with a fixed set
	// of buckets when a write targets any other bucket.
	ErrNoSuchBucket = errors.New("the specified bucket does not exist")
)

// MemoryBackend is a concurrency-safe in-memory object store.
type MemoryBackend struct {
	mu sync.RWMutex

	// key: bucket name, value: objects by key
	buckets map[string]map[string][]byte

	// only pre-created buckets accept writes
	fixed bool
	puts  int
}

// NewMemoryBackend creates a MemoryBackend. If buckets are given only those
// buckets exist; otherwise any bucket is created on first write.
func NewMemoryBackend(buckets ...string) *MemoryBackend {
	b := &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
		fixed:   len(buckets) > 0,
	}
	for _, name := range buckets {
		b.buckets[name] = make(map[string][]byte)
	}
	return b
}

// Put stores a copy of body, replacing any existing object.
func (b *MemoryBackend) Put(ctx context.Context, bucket, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	objects, ok := b.buckets[bucket]
	if !ok {
		if b.fixed {
			return ErrNoSuchBucket
		}
		objects = make(map[string][]byte)
		b.buckets[bucket] = objects
	}

	objects[key] = append([]byte(nil), body...)
	b.puts++
	return nil
}

// Get returns the object stored under key.
func (b *MemoryBackend) Get(bucket, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	body, ok := b.buckets[bucket][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), body...), nil
}

// Keys returns the keys in bucket in ascending order.
func (b *MemoryBackend) Keys(bucket string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.buckets[bucket]))
	for k := range b.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Puts returns how many writes succeeded, overwrites included.
func (b *MemoryBackend) Puts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.puts
}
