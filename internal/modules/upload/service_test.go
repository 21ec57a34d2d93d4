package upload

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blognoitro/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.AppConfig{
		Paths:  config.PathsConfig{Uploads: t.TempDir()},
		Upload: config.UploadConfig{MaxSizeMB: 5, CloudMaxSizeMB: 10},
	}
	return NewService(cfg, nil)
}

// fileHeader builds a real multipart.FileHeader by round-tripping a form.
func fileHeader(t *testing.T, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="photo"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xAB}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(int64(size) + 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestStoreLocal_WritesFile(t *testing.T) {
	svc := testService(t)

	fh := fileHeader(t, "image/png", 128)
	result, err := svc.StoreLocal(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(result.Filename, ".png"))
	assert.Equal(t, int64(128), result.Size)
	assert.Equal(t, "image/png", result.Type)

	data, err := os.ReadFile(filepath.Join(svc.Dir(), result.Filename))
	require.NoError(t, err)
	assert.Len(t, data, 128)
}

func TestStoreLocal_RejectsUnknownType(t *testing.T) {
	svc := testService(t)

	for _, ct := range []string{"application/pdf", "text/html", "image/svg+xml", ""} {
		fh := fileHeader(t, ct, 16)
		_, err := svc.StoreLocal(fh)
		assert.ErrorIs(t, err, ErrInvalidType, "content type %q", ct)
	}
}

func TestStoreLocal_RejectsOversize(t *testing.T) {
	svc := testService(t)

	fh := fileHeader(t, "image/jpeg", 64)
	fh.Size = svc.MaxLocalBytes() + 1

	_, err := svc.StoreLocal(fh)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDeleteLocal(t *testing.T) {
	svc := testService(t)

	fh := fileHeader(t, "image/gif", 32)
	result, err := svc.StoreLocal(fh)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLocal(result.Filename))
	_, err = os.Stat(filepath.Join(svc.Dir(), result.Filename))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteLocal_Missing(t *testing.T) {
	svc := testService(t)
	assert.ErrorIs(t, svc.DeleteLocal("no-such-file.png"), ErrNotFound)
}

func TestDeleteLocal_PathTraversalFlattened(t *testing.T) {
	svc := testService(t)

	outside := filepath.Join(filepath.Dir(svc.Dir()), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	err := svc.DeleteLocal("../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}

func TestStoreCloud_DisabledWithoutStore(t *testing.T) {
	svc := testService(t)

	fh := fileHeader(t, "image/webp", 16)
	_, err := svc.StoreCloud(t.Context(), fh)
	assert.ErrorIs(t, err, ErrCloudDisabled)
}
