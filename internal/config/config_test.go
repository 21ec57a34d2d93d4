package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultUploadMB, cfg.Upload.MaxSizeMB)
	assert.Equal(t, defaultCloudUploadMB, cfg.Upload.CloudMaxSizeMB)
	assert.NotEmpty(t, cfg.Avatar.URLTemplate)
	assert.True(t, cfg.IsDev())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
port: 8080
env: production
jwt_secret: super-secret
allowed_origins:
  - blognoitro.vn
  - "*.blognoitro.vn"
upload:
  max_size_mb: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"blognoitro.vn", "*.blognoitro.vn"}, cfg.AllowedOrigins)
	assert.Equal(t, 2, cfg.Upload.MaxSizeMB)
	// unset values still fall back
	assert.Equal(t, defaultCloudUploadMB, cfg.Upload.CloudMaxSizeMB)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o600))

	t.Setenv(envPrefix+"PORT", "9090")
	t.Setenv(envPrefix+"ENV", "production")
	t.Setenv(envPrefix+"ALLOWED_ORIGINS", "a.example, b.example ,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, []string{"a.example", "b.example"}, cfg.AllowedOrigins)
}

func TestLoad_S3EnvEnablesObjectStorage(t *testing.T) {
	t.Setenv(envPrefix+"S3_ENDPOINT", "minio.local:9000")
	t.Setenv(envPrefix+"S3_BUCKET", "bnt-images")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.True(t, cfg.ObjectStorage.Enable)
	assert.Equal(t, "minio.local:9000", cfg.ObjectStorage.Endpoint)
	assert.Equal(t, "bnt-images", cfg.ObjectStorage.Bucket)
}
