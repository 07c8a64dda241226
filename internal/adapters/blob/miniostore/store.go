// Package miniostore keeps media payloads in a MinIO (S3-compatible) bucket,
// one object per blob id. Playback URLs are presigned and expire on their
// own, which makes them naturally transient.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
)

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLTTL    time.Duration
}

// Store is the object-storage blob strategy.
type Store struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &Store{client: client, bucket: cfg.Bucket, urlTTL: ttl}, nil
}

// Ensure Store implements portsrepo.BlobRepositoryFacade
var _ portsrepo.BlobRepositoryFacade = (*Store)(nil)

func (s *Store) SaveBlob(ctx context.Context, blob domain.Blob) error {
	_, err := s.client.PutObject(ctx, s.bucket, blob.BlobID,
		bytes.NewReader(blob.Payload), blob.Size,
		minio.PutObjectOptions{ContentType: blob.ContentType})
	if err != nil {
		return fmt.Errorf("%w: failed to upload blob %s: %v", apperrors.ErrPersistence, blob.BlobID, err)
	}
	return nil
}

func (s *Store) FindBlobByID(ctx context.Context, blobID string) (*domain.Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, blobID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", blobID, err)
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat blob %s: %w", blobID, err)
	}

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", blobID, err)
	}

	return &domain.Blob{
		BlobID:      blobID,
		Payload:     payload,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		CreatedAt:   stat.LastModified,
	}, nil
}

func (s *Store) DeleteBlob(ctx context.Context, blobID string) error {
	// RemoveObject succeeds for absent keys, which matches the idempotent
	// delete contract.
	if err := s.client.RemoveObject(ctx, s.bucket, blobID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: failed to delete blob %s: %v", apperrors.ErrPersistence, blobID, err)
	}
	return nil
}

func (s *Store) ResolveURL(ctx context.Context, blobID string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, blobID, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to stat blob %s: %w", blobID, err)
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, blobID, s.urlTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign blob %s: %w", blobID, err)
	}
	return url.String(), nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
