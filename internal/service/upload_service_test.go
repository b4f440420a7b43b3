package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/storage"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart failed: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func newTestUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.UploadConfig{
		Driver:            "local",
		LocalDir:          dir,
		PublicPrefix:      "/uploads",
		MaxSize:           64 * 1024,
		AllowedTypes:      []string{"image/png", "image/jpeg"},
		AllowedExtensions: []string{".png", "jpg"},
		MaxWidth:          100,
		MaxHeight:         100,
	}
	return NewUploadService(cfg, storage.NewLocalStorage(dir, cfg.PublicPrefix)), dir
}

func TestUploadSavesImage(t *testing.T) {
	svc, dir := newTestUploadService(t)
	url, err := svc.SaveFile(context.Background(), multipartFile(t, "cover.PNG", pngBytes(t, 10, 10)), "post", 7)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/post/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}
	stored := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	svc, _ := newTestUploadService(t)
	cases := []struct {
		name     string
		filename string
		content  []byte
		want     error
	}{
		{name: "extension", filename: "notes.txt", content: pngBytes(t, 4, 4), want: ErrInvalidFileType},
		{name: "content", filename: "fake.png", content: []byte("plain text pretending"), want: ErrInvalidFileType},
		{name: "dimensions", filename: "wide.png", content: pngBytes(t, 200, 10), want: ErrImageTooLarge},
		{name: "size", filename: "big.png", content: bytes.Repeat([]byte{0}, 65*1024), want: ErrFileTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveFile(context.Background(), multipartFile(t, tc.filename, tc.content), "post", 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{}, nil)
	if _, err := svc.SaveFile(context.Background(), multipartFile(t, "a.png", pngBytes(t, 1, 1)), "", 1); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}
