// Package storage 保存上传的文章配图，支持本地磁盘与 MinIO。
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
)

// Object 待保存的对象
type Object struct {
	Key         string // 相对路径，如 post/2026/05/uuid.png
	Body        io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Storage 对象存储
type Storage interface {
	Put(ctx context.Context, obj Object) (string, error)
	Delete(ctx context.Context, key string) error
}

// New 按配置创建存储
func New(ctx context.Context, uploadCfg config.UploadConfig, minioCfg config.MinioConfig) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(uploadCfg.Driver)) {
	case "", constants.UploadDriverLocal:
		return NewLocalStorage(uploadCfg.LocalDir, uploadCfg.PublicPrefix), nil
	case constants.UploadDriverMinio:
		store, err := NewMinioStorage(ctx, minioCfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported upload driver: %s", uploadCfg.Driver)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
