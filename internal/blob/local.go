package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores objects as files below root/<bucket>/<key>.
// The web server exposes root on /uploads.
type Local struct {
	root      string
	publicURL string
}

var _ Store = (*Local)(nil)

// NewLocal creates root if needed.
func NewLocal(root, publicURL string) (*Local, error) {
	if root == "" {
		return nil, errors.New("local storage path is required")
	}

	if publicURL == "" {
		return nil, errors.New("local storage public url is required")
	}

	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create local storage path: %w", err)
	}

	return &Local{root: root, publicURL: publicURL}, nil
}

// Root returns the directory served on /uploads.
func (l *Local) Root() string {
	return l.root
}

// Put implements Store. Files are written to a temp file first and renamed into place.
func (l *Local) Put(
	ctx context.Context, bucket, key string, data []byte, _ string, overwrite bool,
) (Object, error) {
	key, err := checkKey(bucket, key)
	if err != nil {
		return Object{}, err
	}

	if err = ctx.Err(); err != nil {
		return Object{}, err //nolint:wrapcheck
	}

	target := filepath.Join(l.root, bucket, filepath.FromSlash(key))

	if err = os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return Object{}, fmt.Errorf("failed to create object directory: %w", err)
	}

	if !overwrite {
		if _, err = os.Stat(target); err == nil {
			return Object{}, ErrExists
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Object{}, fmt.Errorf("failed to stat object: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Object{}, fmt.Errorf("failed to write object: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return Object{}, fmt.Errorf("failed to close object: %w", err)
	}

	if err = os.Chmod(tmp.Name(), 0o640); err != nil {
		return Object{}, fmt.Errorf("failed to chmod object: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return Object{}, fmt.Errorf("failed to move object into place: %w", err)
	}

	return Object{Bucket: bucket, Key: key, URL: l.URL(bucket, key)}, nil
}

// Delete implements Store.
func (l *Local) Delete(ctx context.Context, bucket, key string) error {
	key, err := checkKey(bucket, key)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	err = os.Remove(filepath.Join(l.root, bucket, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// URL implements Store.
func (l *Local) URL(bucket, key string) string {
	return joinURL(l.publicURL, bucket, key)
}
