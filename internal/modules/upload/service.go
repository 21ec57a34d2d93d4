package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blognoitro/core/internal/config"
	"github.com/blognoitro/core/internal/pkg/objectstore"
)

var (
	// ErrInvalidType signals an upload whose content type is not an allowed image format.
	ErrInvalidType = errors.New("định dạng tệp không được hỗ trợ")
	// ErrTooLarge signals an upload over the size limit.
	ErrTooLarge = errors.New("tệp quá lớn")
	// ErrNotFound signals a delete of a file that does not exist.
	ErrNotFound = errors.New("tệp không tồn tại")
	// ErrCloudDisabled signals a cloud upload with no object store configured.
	ErrCloudDisabled = errors.New("lưu trữ đám mây chưa được cấu hình")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service stores uploaded images on local disk and, when configured, in an
// S3-compatible object store.
type Service struct {
	dir   string
	store *objectstore.Client
	cfg   config.UploadConfig
}

func NewService(cfg *config.AppConfig, store *objectstore.Client) *Service {
	return &Service{
		dir:   cfg.UploadDir(),
		store: store,
		cfg:   cfg.Upload,
	}
}

// Result describes a stored upload.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// MaxLocalBytes is the size limit for local uploads.
func (s *Service) MaxLocalBytes() int64 {
	return int64(s.cfg.MaxSizeMB) << 20
}

// MaxCloudBytes is the size limit for cloud uploads.
func (s *Service) MaxCloudBytes() int64 {
	return int64(s.cfg.CloudMaxSizeMB) << 20
}

// CloudEnabled reports whether the object store path is configured.
func (s *Service) CloudEnabled() bool { return s.store != nil }

// StoreLocal validates the file and writes it under the upload directory,
// returning the public path it is served from.
func (s *Service) StoreLocal(fh *multipart.FileHeader) (*Result, error) {
	ext, err := s.validate(fh, s.MaxLocalBytes())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := freshName(ext)
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	return &Result{
		URL:      "/uploads/" + name,
		Filename: name,
		Size:     fh.Size,
		Type:     contentType(fh),
	}, nil
}

// StoreCloud validates the file and uploads it to the object store.
func (s *Service) StoreCloud(ctx context.Context, fh *multipart.FileHeader) (*Result, error) {
	if s.store == nil {
		return nil, ErrCloudDisabled
	}
	ext, err := s.validate(fh, s.MaxCloudBytes())
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name := freshName(ext)
	url, err := s.store.Put(ctx, name, contentType(fh), src, fh.Size)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:      url,
		Filename: name,
		Size:     fh.Size,
		Type:     contentType(fh),
	}, nil
}

// DeleteLocal removes a previously uploaded file by name. The name is
// flattened to its base component so a crafted path cannot escape the
// upload directory.
func (s *Service) DeleteLocal(name string) error {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return os.Remove(path)
}

// Dir returns the local upload directory for static serving.
func (s *Service) Dir() string { return s.dir }

func (s *Service) validate(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	ext, ok := allowedTypes[contentType(fh)]
	if !ok {
		return "", ErrInvalidType
	}
	if fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	return ext, nil
}

func contentType(fh *multipart.FileHeader) string {
	return strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
}

// freshName builds a collision-resistant file name, millisecond timestamp
// plus random suffix.
func freshName(ext string) string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
