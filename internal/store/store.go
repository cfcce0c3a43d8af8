// Package store is the content store client. It translates bakery content
// operations into database queries (gorm) and blob store calls.
package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/config"
)

var (
	blobUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bakery_blob_uploads_total",
		Help: "Number of blob uploads by bucket and result.",
	}, []string{"bucket", "result"})

	// OrphanBlobs counts uploaded blobs whose compensation failed.
	OrphanBlobs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_orphan_blobs_total",
		Help: "Number of uploaded blobs left without an owning record.",
	})
)

// Config of the store client.
type Config struct {
	CakeBucket    string
	AssetBucket   string
	MaxUploadSize int64
}

// ConfigFromStorage picks the store settings from the storage config.
func ConfigFromStorage(s config.Storage) Config {
	return Config{
		CakeBucket:    s.CakeBucket,
		AssetBucket:   s.AssetBucket,
		MaxUploadSize: s.MaxUploadSize,
	}
}

// Client is the content store client.
// It is safe for concurrent use.
type Client struct {
	db    *gorm.DB
	blobs blob.Store
	cfg   Config
}

// New creates a client. db and blobs must not be nil.
func New(db *gorm.DB, blobs blob.Store, cfg Config) (*Client, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if blobs == nil {
		return nil, ErrBlobsNil
	}

	return &Client{db: db, blobs: blobs, cfg: cfg}, nil
}

// CakeBucket returns the bucket cake images are uploaded to.
func (c *Client) CakeBucket() string {
	return c.cfg.CakeBucket
}
