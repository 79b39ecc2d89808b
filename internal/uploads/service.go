// Package uploads stores images attached to articles by administrators.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/storage"
	"go.uber.org/zap"
)

// DefaultMaxBytes is used when no limit is configured
const DefaultMaxBytes int64 = 5 << 20

// sniffLen is the number of bytes http.DetectContentType looks at
const sniffLen = 512

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file is too large")
	ErrEmpty    = errors.New("file is empty")
)

// allowedTypes lists the image formats accepted for upload. SVG is excluded
// because it can carry scripts.
var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/x-icon", "image/vnd.microsoft.icon"}

// Result is returned to the admin editor
type Result struct {
	URL string `json:"url"`
}

// Service validates and stores uploads
type Service struct {
	store    storage.Storage
	maxBytes int64
	now      func() time.Time
}

// NewService creates a new uploads service
func NewService(store storage.Storage, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{store: store, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes returns the upload size limit
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Upload sniffs the content type from the file's first bytes, rejects
// anything that is not an allowed image and stores the rest under a fresh key.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader, size int64) (*Result, error) {
	if size > s.maxBytes {
		return nil, common.NewAppError(http.StatusRequestEntityTooLarge, "file is too large", ErrTooLarge)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, common.NewBadRequestError("failed to read file", err)
	}
	if n == 0 {
		return nil, common.NewBadRequestError("file is empty", ErrEmpty)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !storage.IsImageMimeType(contentType) || !storage.ValidateMimeType(contentType, allowedTypes) {
		logger.WithContext(ctx).Warn("Rejected upload",
			zap.String("filename", filename),
			zap.String("content_type", contentType),
		)
		return nil, common.NewBadRequestError("only image uploads are allowed", ErrNotImage)
	}

	ext := storage.ExtensionForMimeType(contentType)
	if ext == "" {
		ext = path.Ext(filename)
	}
	key := storage.GenerateImageKey("image"+ext, s.now())

	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(r, s.maxBytes-int64(n)+1))
	res, err := s.store.Upload(ctx, key, body, size, contentType)
	if err != nil {
		return nil, common.NewInternalError("failed to store file", err)
	}
	if res.Size > s.maxBytes {
		_ = s.store.Delete(ctx, key)
		return nil, common.NewAppError(http.StatusRequestEntityTooLarge, "file is too large", ErrTooLarge)
	}

	logger.WithContext(ctx).Info("Image uploaded",
		zap.String("key", res.Key),
		zap.String("content_type", contentType),
		zap.Int64("size", res.Size),
	)

	return &Result{URL: res.URL}, nil
}
