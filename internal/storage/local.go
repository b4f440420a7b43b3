package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 本地磁盘存储，由 HTTP 服务以静态目录对外提供
type LocalStorage struct {
	dir          string
	publicPrefix string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(dir, publicPrefix string) *LocalStorage {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	if strings.TrimSpace(publicPrefix) == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStorage{dir: dir, publicPrefix: publicPrefix}
}

// Dir 存储根目录
func (s *LocalStorage) Dir() string {
	return s.dir
}

// PublicPrefix 对外访问前缀
func (s *LocalStorage) PublicPrefix() string {
	return s.publicPrefix
}

// Put 写入文件并返回访问路径
func (s *LocalStorage) Put(_ context.Context, obj Object) (string, error) {
	target, err := s.resolve(obj.Key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, obj.Body); err != nil {
		return "", err
	}
	return joinURL(s.publicPrefix, obj.Key), nil
}

// Delete 删除文件，不存在时忽略
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve 拒绝跳出存储根目录的路径
func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(key))
	if cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}
