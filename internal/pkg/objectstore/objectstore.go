package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blognoitro/core/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client uploads images to an S3-compatible object store. It replaces the
// Cloudinary passthrough the original site used.
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
	useSSL    bool
	endpoint  string
}

// New builds an object store client from config. Returns (nil, nil) when the
// store is not enabled so callers can treat the cloud path as optional.
func New(cfg config.ObjectStorageConfig) (*Client, error) {
	if !cfg.Enable {
		return nil, nil
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("object storage: endpoint and bucket are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}

	return &Client{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		useSSL:    cfg.UseSSL,
		endpoint:  cfg.Endpoint,
	}, nil
}

// Put stores an object and returns its public URL.
func (c *Client) Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return c.URLFor(objectName), nil
}

// Remove deletes an object.
func (c *Client) Remove(ctx context.Context, objectName string) error {
	return c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{})
}

// URLFor builds the public URL of an object.
func (c *Client) URLFor(objectName string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + objectName
	}
	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, c.bucket, objectName)
}
