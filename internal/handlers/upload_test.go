package handlers

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

func multipartImage(t *testing.T, field, filename string) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile(field)
	require.NoError(t, err)
	return file, header
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	t.Setenv("BASE_URL", "http://test.local")

	file, header := multipartImage(t, "image", "photo.JPG")
	defer file.Close()

	img, err := saveUpload(file, header, "cars")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(img.PublicID, "cars/"))
	require.True(t, strings.HasSuffix(img.PublicID, ".jpg"))
	require.Equal(t, "http://test.local/uploads/"+img.PublicID, img.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.PublicID)))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))
}

func TestSaveUploadRejectsNonImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	file, header := multipartImage(t, "image", "payload.exe")
	defer file.Close()

	_, err := saveUpload(file, header, "misc")
	require.Error(t, err)
}

func TestRemoveStoredObject(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	t.Setenv("UPLOAD_DIR", uploads)

	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "misc"), 0o755))
	stored := filepath.Join(uploads, "misc", "a.png")
	require.NoError(t, os.WriteFile(stored, []byte("x"), 0o644))

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, removeStoredObject("misc/a.png"))
	_, err := os.Stat(stored)
	require.True(t, os.IsNotExist(err))

	// Traversal attempts stay inside the upload root.
	require.Error(t, removeStoredObject("../secret.txt"))
	_, err = os.Stat(outside)
	require.NoError(t, err)
}
