// Package blob stores binary objects (cake images, the site logo) in buckets
// and resolves their public URLs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/melitabakes/bakery/internal/config"
)

var (
	// ErrExists is returned when an object exists and overwrite was not requested.
	ErrExists = errors.New("object already exists")
	// ErrInvalidKey is returned for empty keys or keys leaving the bucket.
	ErrInvalidKey = errors.New("invalid object key")
	// ErrInvalidBucket is returned for empty or malformed bucket names.
	ErrInvalidBucket = errors.New("invalid bucket")
)

// Store is implemented by every blob driver.
type Store interface {
	// Put writes data below bucket/key. Without overwrite an existing object yields ErrExists.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) (Object, error)
	// Delete removes bucket/key. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, key string) error
	// URL returns the public URL of bucket/key.
	URL(bucket, key string) string
}

// File is an uploaded file as received from the browser.
type File struct {
	Name string
	Data []byte
}

// Object references a stored blob.
type Object struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

// IsZero reports whether o references nothing.
func (o Object) IsZero() bool {
	return o.Bucket == "" && o.Key == ""
}

// New creates the driver selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		return NewS3(ctx, cfg)
	case config.StorageDriverLocal:
		return NewLocal(cfg.LocalPath, cfg.PublicURL)
	case config.StorageDriverMemory:
		return NewMemory(cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Driver)
	}
}

// checkKey validates bucket and key and returns the cleaned key.
func checkKey(bucket, key string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
	}

	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return cleaned, nil
}

// joinURL appends bucket and key to base.
func joinURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}
