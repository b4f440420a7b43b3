package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blogicum-next/internal/config"
)

func TestLocalStoragePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "/media/")
	url, err := store.Put(context.Background(), Object{
		Key:  "post/2026/05/a.png",
		Body: strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if url != "/media/post/2026/05/a.png" {
		t.Fatalf("unexpected url: %s", url)
	}
	content, err := os.ReadFile(filepath.Join(dir, "post", "2026", "05", "a.png"))
	if err != nil || string(content) != "png-bytes" {
		t.Fatalf("file not written: %v %q", err, content)
	}
	if err := store.Delete(context.Background(), "post/2026/05/a.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(context.Background(), "post/2026/05/a.png"); err != nil {
		t.Fatalf("deleting a missing file should be ignored: %v", err)
	}
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "")
	target, err := store.resolve("../../etc/passwd")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.HasPrefix(target, dir) {
		t.Fatalf("path escaped storage root: %s", target)
	}
	if _, err := store.resolve(""); err == nil {
		t.Fatalf("empty key should be rejected")
	}
}

func TestNewSelectsDriver(t *testing.T) {
	got, err := New(context.Background(), config.UploadConfig{Driver: "local", LocalDir: t.TempDir()}, config.MinioConfig{})
	if err != nil {
		t.Fatalf("new local storage failed: %v", err)
	}
	if _, ok := got.(*LocalStorage); !ok {
		t.Fatalf("expected local storage, got %T", got)
	}
	if _, err := New(context.Background(), config.UploadConfig{Driver: "ftp"}, config.MinioConfig{}); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestResolvePublicURL(t *testing.T) {
	if got := resolvePublicURL(config.MinioConfig{Endpoint: "s3.local:9000", Bucket: "img", UseSSL: true}); got != "https://s3.local:9000/img" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := resolvePublicURL(config.MinioConfig{PublicURL: "https://cdn.example.com/img"}); got != "https://cdn.example.com/img" {
		t.Fatalf("explicit public url should win, got %s", got)
	}
}
