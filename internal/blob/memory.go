package blob

import (
	"context"
	"sync"
)

// Memory keeps objects in process memory. Used by tests and the "memory" driver.
type Memory struct {
	mu        sync.RWMutex
	publicURL string
	objects   map[string][]byte
	types     map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory(publicURL string) *Memory {
	if publicURL == "" {
		publicURL = "memory://"
	}

	return &Memory{
		publicURL: publicURL,
		objects:   make(map[string][]byte),
		types:     make(map[string]string),
	}
}

// Put implements Store.
func (m *Memory) Put(
	ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool,
) (Object, error) {
	key, err := checkKey(bucket, key)
	if err != nil {
		return Object{}, err
	}

	if err = ctx.Err(); err != nil {
		return Object{}, err //nolint:wrapcheck
	}

	id := bucket + "/" + key

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[id]; ok && !overwrite {
		return Object{}, ErrExists
	}

	m.objects[id] = append([]byte(nil), data...)
	m.types[id] = contentType

	return Object{Bucket: bucket, Key: key, URL: m.URL(bucket, key)}, nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, bucket, key string) error {
	key, err := checkKey(bucket, key)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	m.mu.Lock()
	delete(m.objects, bucket+"/"+key)
	delete(m.types, bucket+"/"+key)
	m.mu.Unlock()

	return nil
}

// URL implements Store.
func (m *Memory) URL(bucket, key string) string {
	return joinURL(m.publicURL, bucket, key)
}

// Get returns a copy of the stored object and its content type.
func (m *Memory) Get(bucket, key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, "", false
	}

	return append([]byte(nil), data...), m.types[bucket+"/"+key], true
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}
