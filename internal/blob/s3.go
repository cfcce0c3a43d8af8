package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/config"
)

const defaultRegion = "us-east-1"

// S3 stores objects in any S3 compatible service (AWS S3, MinIO, Supabase storage, ...).
type S3 struct {
	client    *s3.Client
	endpoint  string
	publicURL string
}

var _ Store = (*S3)(nil)

// NewS3 creates the S3 client from cfg.
func NewS3(ctx context.Context, cfg config.Storage) (*S3, error) {
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	if endpoint == "" && cfg.PublicURL == "" {
		return nil, errors.New("storage endpoint or public url is required")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = endpoint
	}

	return &S3{client: client, endpoint: endpoint, publicURL: publicURL}, nil
}

// EnsureBucket creates bucket if it doesn't exist.
func (s *S3) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	log.Info().Str("bucket", bucket).Msg("creating storage bucket")

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}

		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Put implements Store. Without overwrite the write is conditional (If-None-Match: *).
func (s *S3) Put(
	ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool,
) (Object, error) {
	key, err := checkKey(bucket, key)
	if err != nil {
		return Object{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}

	if overwrite {
		input.CacheControl = aws.String("no-cache")
	} else {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err = s.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return Object{}, ErrExists
		}

		return Object{}, fmt.Errorf("failed to upload object: %w", err)
	}

	return Object{Bucket: bucket, Key: key, URL: s.URL(bucket, key)}, nil
}

// Delete implements Store.
func (s *S3) Delete(ctx context.Context, bucket, key string) error {
	key, err := checkKey(bucket, key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// URL implements Store. Buckets are expected to allow anonymous reads.
func (s *S3) URL(bucket, key string) string {
	return joinURL(s.publicURL, bucket, key)
}
