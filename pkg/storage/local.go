package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// DefaultLocalURL is the path local uploads are served from
const DefaultLocalURL = "/uploads"

// LocalStorage keeps files on the local filesystem
type LocalStorage struct {
	root    string
	baseURL string
	now     func() time.Time
}

// NewLocalStorage creates the root directory if needed
func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("local storage: directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("local storage: create %s: %w", root, err)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultLocalURL
	}
	return &LocalStorage{root: root, baseURL: baseURL, now: time.Now}, nil
}

// Root returns the directory files are written to
func (s *LocalStorage) Root() string {
	return s.root
}

// Upload writes reader to root/key. Partial files are removed on failure.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		logger.WithContext(ctx).Error("Failed to write upload", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	logger.WithContext(ctx).Info("File stored locally", zap.String("key", key), zap.Int64("size", written))

	return &UploadResult{
		Key:        key,
		URL:        s.GetURL(key),
		Size:       written,
		MimeType:   contentType,
		UploadedAt: s.now(),
	}, nil
}

// Delete removes root/key. Missing files are not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns the public URL for a file
func (s *LocalStorage) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, strings.TrimLeft(key, "/"))
}
