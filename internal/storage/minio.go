package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage MinIO / S3 兼容对象存储
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorage 创建 MinIO 存储，bucket 不存在时自动创建
func NewMinioStorage(ctx context.Context, cfg config.MinioConfig) (*MinioStorage, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check minio bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create minio bucket %s: %w", bucket, err)
		}
		logger.Infow("minio_bucket_created", "bucket", bucket)
	}
	return &MinioStorage{
		client:    client,
		bucket:    bucket,
		publicURL: resolvePublicURL(cfg),
	}, nil
}

// Put 上传对象并返回访问地址
func (s *MinioStorage) Put(ctx context.Context, obj Object) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, obj.Key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: obj.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", obj.Key, err)
	}
	return joinURL(s.publicURL, obj.Key), nil
}

// Delete 删除对象
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio remove %s: %w", key, err)
	}
	return nil
}

func resolvePublicURL(cfg config.MinioConfig) string {
	if url := strings.TrimSpace(cfg.PublicURL); url != "" {
		return url
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, strings.TrimSpace(cfg.Endpoint), strings.TrimSpace(cfg.Bucket))
}
