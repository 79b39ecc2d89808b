package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestGenerateImageKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	key := GenerateImageKey("Photo.JPG", now)

	assert.Regexp(t, regexp.MustCompile(`^images/2024/03/[0-9a-f-]{36}\.jpg$`), key)
	assert.NotEqual(t, key, GenerateImageKey("Photo.JPG", now))
}

func TestExtensionForMimeType(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionForMimeType("image/jpeg"))
	assert.Equal(t, ".png", ExtensionForMimeType("IMAGE/PNG"))
	assert.Equal(t, ".webp", ExtensionForMimeType("image/webp"))
	assert.Equal(t, "", ExtensionForMimeType("application/pdf"))
}

func TestValidateMimeType(t *testing.T) {
	tests := []struct {
		name    string
		mime    string
		allowed []string
		want    bool
	}{
		{"no restriction", "application/pdf", nil, true},
		{"exact", "image/png", []string{"image/png"}, true},
		{"wildcard", "image/gif", []string{"image/*"}, true},
		{"case insensitive", "IMAGE/PNG", []string{"image/png"}, true},
		{"rejected", "text/html", []string{"image/*"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateMimeType(tt.mime, tt.allowed))
		})
	}
}

func TestIsImageMimeType(t *testing.T) {
	assert.True(t, IsImageMimeType("image/jpeg"))
	assert.False(t, IsImageMimeType("text/plain; charset=utf-8"))
}

func TestCleanKey(t *testing.T) {
	key, err := cleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = cleanKey("/")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	res, err := store.Upload(context.Background(), "images/2024/03/a.png", bytes.NewReader([]byte("png-bytes")), 9, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/images/2024/03/a.png", res.URL)
	assert.Equal(t, int64(9), res.Size)
	assert.Equal(t, "image/png", res.MimeType)

	data, err := os.ReadFile(filepath.Join(dir, "images", "2024", "03", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorage_UploadDoesNotOverwrite(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "a.png", strings.NewReader("one"), 3, "image/png")
	require.NoError(t, err)
	_, err = store.Upload(context.Background(), "a.png", strings.NewReader("two"), 3, "image/png")
	assert.Error(t, err)

	assert.Equal(t, "/media/a.png", store.GetURL("a.png"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_UploadRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "broken.png", failingReader{}, 10, "image/png")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "x.gif", strings.NewReader("gif"), 3, "image/gif")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "x.gif"))
	require.NoError(t, store.Delete(context.Background(), "x.gif"))
}

func TestNewLocalStorage_RequiresDir(t *testing.T) {
	_, err := NewLocalStorage("", "")
	assert.Error(t, err)
}

func TestS3Storage_Upload(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3StorageWithClient(client, S3Config{Bucket: "media", Region: "eu-central-1"})

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "media" && *in.Key == "images/a.png" && *in.ContentType == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil)

	res, err := store.Upload(context.Background(), "/images/a.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://media.s3.eu-central-1.amazonaws.com/images/a.png", res.URL)
	client.AssertExpectations(t)
}

func TestS3Storage_UploadError(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3StorageWithClient(client, S3Config{Bucket: "media", Endpoint: "http://minio:9000/"})

	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := store.Upload(context.Background(), "a.png", strings.NewReader("png"), 3, "image/png")
	assert.ErrorContains(t, err, "access denied")
	assert.Equal(t, "http://minio:9000/media/a.png", store.GetURL("a.png"))
}

func TestS3Storage_Delete(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3StorageWithClient(client, S3Config{Bucket: "media", BaseURL: "https://cdn.example.com/"})

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "a.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	require.NoError(t, store.Delete(context.Background(), "a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", store.GetURL("a.png"))
	client.AssertExpectations(t)
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{Provider: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = New(context.Background(), config.StorageConfig{Provider: "gcs"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(context.Background(), config.StorageConfig{Provider: "s3"})
	assert.Error(t, err)
}
