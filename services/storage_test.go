package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// uploadHeader builds a real multipart.FileHeader the way a handler
// would receive one.
func uploadHeader(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File[fieldName]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestSaveStoresFileUnderUploads(t *testing.T) {
	publicDir := t.TempDir()
	store := NewUploadStore(publicDir)

	header := uploadHeader(t, "main_image", "cover.PNG", "fake image bytes")
	publicPath, err := store.Save(header)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	require.True(t, strings.HasSuffix(publicPath, ".png"), "extension is kept, lower-cased")

	realPath := filepath.Join(publicDir, "uploads", filepath.Base(publicPath))
	content, err := os.ReadFile(realPath)
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(content))
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	first, err := store.Save(uploadHeader(t, "f", "same.png", "a"))
	require.NoError(t, err)
	second, err := store.Save(uploadHeader(t, "f", "same.png", "b"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestRemoveDeletesBackingFile(t *testing.T) {
	publicDir := t.TempDir()
	store := NewUploadStore(publicDir)

	publicPath, err := store.Save(uploadHeader(t, "f", "gone.png", "bytes"))
	require.NoError(t, err)

	store.Remove(publicPath)

	realPath := filepath.Join(publicDir, "uploads", filepath.Base(publicPath))
	_, err = os.Stat(realPath)
	require.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	// Best-effort: nothing to assert beyond "does not panic or escalate"
	store.Remove("/uploads/never-existed.png")
}

func TestRemoveRefusesPathsOutsideUploads(t *testing.T) {
	publicDir := t.TempDir()
	store := NewUploadStore(publicDir)

	victim := filepath.Join(publicDir, "keep.txt")
	require.NoError(t, os.WriteFile(victim, []byte("important"), 0o644))

	store.Remove("/keep.txt")

	_, err := os.Stat(victim)
	require.NoError(t, err)
}
