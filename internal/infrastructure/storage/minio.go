package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/peergrouptools/peergroup-api/pkg/config"
)

const compressedSuffix = ".zst"

// MinIOClient archives model output as zstd-compressed objects
type MinIOClient struct {
	client  *minio.Client
	bucket  string
	encoder *zstd.Encoder
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client, err := newClient(minioClient, cfg.BucketName)
	if err != nil {
		return nil, err
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return client, nil
}

func newClient(minioClient *minio.Client, bucket string) (*MinIOClient, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &MinIOClient{client: minioClient, bucket: bucket, encoder: encoder}, nil
}

// ensureBucket creates the archive bucket if missing. Archived objects stay private.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Compress returns body encoded as a single zstd frame
func (m *MinIOClient) Compress(body []byte) []byte {
	return m.encoder.EncodeAll(body, make([]byte, 0, len(body)/2))
}

// ObjectName maps an archive key to its object name
func ObjectName(key string) string {
	return strings.TrimPrefix(key, "/") + compressedSuffix
}

// Archive uploads body under key, compressed
func (m *MinIOClient) Archive(ctx context.Context, key string, body []byte) error {
	frame := m.Compress(body)
	_, err := m.client.PutObject(ctx, m.bucket, ObjectName(key), bytes.NewReader(frame), int64(len(frame)), minio.PutObjectOptions{
		ContentType:     "application/zstd",
		ContentEncoding: "zstd",
	})
	if err != nil {
		return fmt.Errorf("failed to upload archive %s: %w", key, err)
	}
	return nil
}
