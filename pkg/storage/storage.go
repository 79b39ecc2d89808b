package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/config"
)

// Provider represents a storage provider type
type Provider string

const (
	ProviderS3    Provider = "s3"
	ProviderLocal Provider = "local"
)

var (
	ErrUnknownProvider = errors.New("unknown storage provider")
	ErrInvalidKey      = errors.New("invalid storage key")
)

// UploadResult contains the result of an upload operation
type UploadResult struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Storage interface defines the storage operations
type Storage interface {
	// Upload stores reader under key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error)

	// Delete removes a stored file
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a file
	GetURL(key string) string
}

// New builds the storage selected by cfg.Provider
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch Provider(strings.ToLower(cfg.Provider)) {
	case ProviderS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:       cfg.Bucket,
			Region:       cfg.Region,
			Endpoint:     cfg.Endpoint,
			AccessKey:    cfg.AccessKeyID,
			SecretKey:    cfg.SecretAccessKey,
			BaseURL:      cfg.PublicBaseURL,
			UsePathStyle: cfg.UsePathStyle,
		})
	case ProviderLocal, "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// GenerateImageKey generates a unique storage key for an uploaded image.
// Format: images/{yyyy}/{mm}/{uuid}{ext}
func GenerateImageKey(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("images/%s/%s%s", now.UTC().Format("2006/01"), uuid.New().String(), ext)
}

// ExtensionForMimeType returns the canonical file extension for an image type
func ExtensionForMimeType(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/x-icon", "image/vnd.microsoft.icon":
		return ".ico"
	}
	return ""
}

// ValidateMimeType checks if the mime type is allowed
func ValidateMimeType(mimeType string, allowedTypes []string) bool {
	if len(allowedTypes) == 0 {
		return true
	}

	mimeType = strings.ToLower(mimeType)
	for _, allowed := range allowedTypes {
		if strings.ToLower(allowed) == mimeType {
			return true
		}
		// Support wildcards like "image/*"
		if strings.HasSuffix(allowed, "/*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}
	}
	return false
}

// IsImageMimeType checks if the mime type is an image
func IsImageMimeType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return "", ErrInvalidKey
	}
	return key, nil
}
