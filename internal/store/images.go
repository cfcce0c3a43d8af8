package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/blob"
)

const (
	keyPrefix = "public/"
	// LogoKey is the fixed key of the site logo in the asset bucket.
	LogoKey = keyPrefix + "logo"
)

// UploadImage stores file in bucket under a collision resistant key
// (public/<unix-millis>-<uuid><ext>) and returns the object with its public URL.
func (c *Client) UploadImage(ctx context.Context, bucket string, file blob.File) (blob.Object, error) {
	mtype, err := c.checkImage(file)
	if err != nil {
		return blob.Object{}, err
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext == "" {
		ext = mtype.Extension()
	}

	key := fmt.Sprintf("%s%d-%s%s", keyPrefix, time.Now().UnixMilli(), uuid.NewString(), ext)

	return c.put(ctx, bucket, key, file.Data, mtype.String(), false)
}

// UploadLogo replaces the site logo in the asset bucket. The URL carries a
// version parameter so browsers fetch the replaced file.
func (c *Client) UploadLogo(ctx context.Context, file blob.File) (blob.Object, error) {
	mtype, err := c.checkImage(file)
	if err != nil {
		return blob.Object{}, err
	}

	obj, err := c.put(ctx, c.cfg.AssetBucket, LogoKey, file.Data, mtype.String(), true)
	if err != nil {
		return blob.Object{}, err
	}

	obj.URL += "?v=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	return obj, nil
}

// DeleteImage removes an uploaded object. Used to compensate failed record writes.
func (c *Client) DeleteImage(ctx context.Context, obj blob.Object) error {
	if obj.IsZero() {
		return nil
	}

	if err := c.blobs.Delete(ctx, obj.Bucket, obj.Key); err != nil {
		return fmt.Errorf("delete %s/%s: %w: %w", obj.Bucket, obj.Key, ErrUpload, err)
	}

	log.Debug().Str("bucket", obj.Bucket).Str("key", obj.Key).Msg("blob deleted")

	return nil
}

func (c *Client) checkImage(file blob.File) (*mimetype.MIME, error) {
	if len(file.Data) == 0 {
		return nil, uploadErr("file %q is empty", file.Name)
	}

	if c.cfg.MaxUploadSize > 0 && int64(len(file.Data)) > c.cfg.MaxUploadSize {
		return nil, uploadErr("file %q exceeds %d bytes", file.Name, c.cfg.MaxUploadSize)
	}

	mtype := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, uploadErr("file %q is %s, not an image", file.Name, mtype.String())
	}

	return mtype, nil
}

func (c *Client) put(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) (blob.Object, error) {
	obj, err := c.blobs.Put(ctx, bucket, key, data, contentType, overwrite)
	if err != nil {
		blobUploads.WithLabelValues(bucket, "error").Inc()

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return blob.Object{}, fmt.Errorf("%w: %w", ErrUpload, err)
		}

		return blob.Object{}, fmt.Errorf("%w: %s/%s: %w", ErrUpload, bucket, key, err)
	}

	blobUploads.WithLabelValues(bucket, "ok").Inc()

	return obj, nil
}
