package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/storage"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

const sniffLength = 512

var allowedUploadScenes = map[string]struct{}{
	constants.UploadScenePost:   {},
	constants.UploadSceneCommon: {},
}

// UploadService 图片上传服务
type UploadService struct {
	cfg   config.UploadConfig
	store storage.Storage
}

// NewUploadService 创建图片上传服务
func NewUploadService(cfg config.UploadConfig, store storage.Storage) *UploadService {
	return &UploadService{cfg: cfg, store: store}
}

// SaveFile 校验并保存上传的图片，返回访问地址
func (s *UploadService) SaveFile(ctx context.Context, file *multipart.FileHeader, scene string, uploaderID uint) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, err := sniffContentType(src)
	if err != nil {
		return "", err
	}
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return "", ErrInvalidFileType
	}
	if err := s.checkDimensions(src); err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	now := time.Now()
	key := path.Join(normalizeUploadScene(scene), now.Format("2006"), now.Format("01"), uuid.New().String()+ext)
	url, err := s.store.Put(ctx, storage.Object{
		Key:         key,
		Body:        src,
		Size:        file.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(file.Filename),
			"uploader-id":       fmt.Sprintf("%d", uploaderID),
		},
	})
	if err != nil {
		return "", err
	}
	logger.Infow("upload_saved", "key", key, "uploader_id", uploaderID, "size", file.Size)
	return url, nil
}

func (s *UploadService) checkDimensions(src io.ReadSeeker) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return ErrInvalidFileType
	}
	if s.cfg.MaxWidth > 0 && cfg.Width > s.cfg.MaxWidth {
		return ErrImageTooLarge
	}
	if s.cfg.MaxHeight > 0 && cfg.Height > s.cfg.MaxHeight {
		return ErrImageTooLarge
	}
	return nil
}

func sniffContentType(src io.ReadSeeker) (string, error) {
	buffer := make([]byte, sniffLength)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return constants.UploadScenePost
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
