package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melitabakes/bakery/internal/config"
)

func TestCheckKey(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		key     string
		want    string
		wantErr error
	}{
		{name: "plain", bucket: "cakes-images", key: "public/1.png", want: "public/1.png"},
		{name: "cleaned", bucket: "cakes-images", key: "public//./1.png", want: "public/1.png"},
		{name: "empty key", bucket: "cakes-images", key: "", wantErr: ErrInvalidKey},
		{name: "absolute key", bucket: "cakes-images", key: "/etc/passwd", wantErr: ErrInvalidKey},
		{name: "traversal", bucket: "cakes-images", key: "../secret", wantErr: ErrInvalidKey},
		{name: "nested traversal", bucket: "cakes-images", key: "public/../../secret", wantErr: ErrInvalidKey},
		{name: "empty bucket", bucket: "", key: "a.png", wantErr: ErrInvalidBucket},
		{name: "bucket with slash", bucket: "a/b", key: "a.png", wantErr: ErrInvalidBucket},
		{name: "dot bucket", bucket: "..", key: "a.png", wantErr: ErrInvalidBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkKey(tt.bucket, tt.key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("http://cdn.test")

	obj, err := m.Put(ctx, "cakes-images", "public/a.png", []byte("png"), "image/png", false)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/cakes-images/public/a.png", obj.URL)
	assert.Equal(t, 1, m.Len())

	_, err = m.Put(ctx, "cakes-images", "public/a.png", []byte("other"), "image/png", false)
	require.ErrorIs(t, err, ErrExists)

	_, err = m.Put(ctx, "cakes-images", "public/a.png", []byte("other"), "image/jpeg", true)
	require.NoError(t, err)

	data, contentType, ok := m.Get("cakes-images", "public/a.png")
	require.True(t, ok)
	assert.Equal(t, "other", string(data))
	assert.Equal(t, "image/jpeg", contentType)

	require.NoError(t, m.Delete(ctx, "cakes-images", "public/a.png"))
	require.NoError(t, m.Delete(ctx, "cakes-images", "public/a.png"))
	assert.Zero(t, m.Len())
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory("").Put(ctx, "b", "k", nil, "", false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocal(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	l, err := NewLocal(root, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	assert.Equal(t, root, l.Root())

	obj, err := l.Put(ctx, "site-assets", "public/logo", []byte("v1"), "image/png", true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/site-assets/public/logo", obj.URL)

	content, err := os.ReadFile(filepath.Join(root, "site-assets", "public", "logo"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))

	_, err = l.Put(ctx, "site-assets", "public/logo", []byte("v2"), "image/png", false)
	require.ErrorIs(t, err, ErrExists)

	_, err = l.Put(ctx, "site-assets", "public/logo", []byte("v2"), "image/png", true)
	require.NoError(t, err)

	content, err = os.ReadFile(filepath.Join(root, "site-assets", "public", "logo"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))

	entries, err := os.ReadDir(filepath.Join(root, "site-assets", "public"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, l.Delete(ctx, "site-assets", "public/logo"))
	require.NoError(t, l.Delete(ctx, "site-assets", "public/logo"))

	_, err = os.Stat(filepath.Join(root, "site-assets", "public", "logo"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.Put(ctx, "site-assets", "../../escape", []byte("x"), "", true)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewLocalValidation(t *testing.T) {
	_, err := NewLocal("", "http://x")
	require.Error(t, err)

	_, err = NewLocal(t.TempDir(), "")
	require.Error(t, err)
}

func TestNewS3Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3(ctx, config.Storage{SecretKey: "secret", Endpoint: "http://localhost:9000"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3(ctx, config.Storage{AccessKey: "key", Endpoint: "http://localhost:9000"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("missing endpoint and public url returns error", func(t *testing.T) {
		_, err := NewS3(ctx, config.Storage{AccessKey: "key", SecretKey: "secret"})
		require.Error(t, err)
	})

	t.Run("endpoint without scheme", func(t *testing.T) {
		s, err := NewS3(ctx, config.Storage{
			AccessKey: "key", SecretKey: "secret", Endpoint: "minio:9000", UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://minio:9000", s.endpoint)
		assert.Equal(t, "http://minio:9000/cakes-images/public/a.png", s.URL("cakes-images", "public/a.png"))
	})

	t.Run("ssl endpoint and public url", func(t *testing.T) {
		s, err := NewS3(ctx, config.Storage{
			AccessKey: "key", SecretKey: "secret", Endpoint: "storage.test", UseSSL: true,
			PublicURL: "https://cdn.test/object/public",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://storage.test", s.endpoint)
		assert.Equal(t, "https://cdn.test/object/public/site-assets/public/logo", s.URL("site-assets", "public/logo"))
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.Storage{Driver: config.StorageDriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(ctx, config.Storage{
		Driver: config.StorageDriverLocal, LocalPath: t.TempDir(), PublicURL: "http://x/uploads",
	})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(ctx, config.Storage{Driver: "ftp"})
	require.ErrorIs(t, err, config.ErrUnknownStorageDriver)
}

func TestObjectIsZero(t *testing.T) {
	assert.True(t, Object{}.IsZero())
	assert.False(t, Object{Bucket: "b", Key: "k"}.IsZero())
}

// fakeS3 is a path style S3 endpoint keeping buckets and objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]string // bucket/key -> content type
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, _ = io.Copy(io.Discard, r.Body)

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	switch {
	case key == "" && r.Method == http.MethodHead:
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	case key == "" && r.Method == http.MethodPut:
		f.buckets[bucket] = true
	case r.Method == http.MethodPut && strings.HasPrefix(key, "locked/"):
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Error><Code>AccessDenied</Code><Message>PreconditionFailed by bucket policy</Message></Error>`)

		return
	case r.Method == http.MethodPut:
		if _, exists := f.objects[bucket+"/"+key]; exists && r.Header.Get("If-None-Match") == "*" {
			w.WriteHeader(http.StatusPreconditionFailed)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
				`<Error><Code>PreconditionFailed</Code><Message>At least one of the pre-conditions you specified did not hold</Message></Error>`)

			return
		}

		f.objects[bucket+"/"+key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
	case r.Method == http.MethodDelete:
		delete(f.objects, bucket+"/"+key)
		w.WriteHeader(http.StatusNoContent)

		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func TestS3AgainstFakeEndpoint(t *testing.T) {
	ctx := context.Background()

	fake := &fakeS3{buckets: map[string]bool{"site-assets": true}, objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewS3(ctx, config.Storage{
		AccessKey: "key", SecretKey: "secret", Endpoint: srv.URL, UsePathStyle: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.EnsureBucket(ctx, "cakes-images"))
	require.NoError(t, s.EnsureBucket(ctx, "site-assets"))
	assert.True(t, fake.buckets["cakes-images"])

	obj, err := s.Put(ctx, "cakes-images", "public/a.png", []byte("png"), "image/png", false)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/cakes-images/public/a.png", obj.URL)
	assert.Equal(t, "image/png", fake.objects["cakes-images/public/a.png"])

	_, err = s.Put(ctx, "cakes-images", "public/a.png", []byte("png"), "image/png", false)
	require.ErrorIs(t, err, ErrExists)

	_, err = s.Put(ctx, "cakes-images", "public/a.png", []byte("png2"), "image/png", true)
	require.NoError(t, err)

	// only the error code decides, not the message text
	_, err = s.Put(ctx, "cakes-images", "locked/a.png", []byte("png"), "image/png", false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExists)
	assert.Contains(t, err.Error(), "AccessDenied")

	require.NoError(t, s.Delete(ctx, "cakes-images", "public/a.png"))
	assert.Empty(t, fake.objects)

	_, err = s.Put(ctx, "cakes-images", "../escape", []byte("x"), "text/plain", false)
	require.ErrorIs(t, err, ErrInvalidKey)
}
