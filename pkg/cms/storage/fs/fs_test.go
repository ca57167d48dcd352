package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSBackend_New(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	b, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "fs", b.Name())
	assert.Equal(t, DefaultURLPrefix, b.urlPrefix)
}

func TestFSBackend_UploadAndDelete(t *testing.T) {
	tmp := t.TempDir()
	b, err := New(Config{BaseDir: tmp, URLPrefix: "https://cms.example.com/uploads/"})
	require.NoError(t, err)
	ctx := context.Background()

	key := "antigravity-cms/ab/cdef_photo.jpg"
	data := []byte("hello fs")

	hosted, err := b.Upload(ctx, bytes.NewReader(data), cms.UploadParams{ObjectKey: key, MimeType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "https://cms.example.com/uploads/"+key, hosted.URL)
	assert.Equal(t, key, hosted.PublicID)
	assert.Equal(t, int64(len(data)), hosted.Bytes)

	got, err := os.ReadFile(filepath.Join(tmp, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	entries, err := os.ReadDir(filepath.Join(tmp, "antigravity-cms", "ab"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, b.Delete(ctx, key))
	assert.ErrorIs(t, b.Delete(ctx, key), cms.ErrAssetNotFound)
}

func TestFSBackend_KeysStayInsideBaseDir(t *testing.T) {
	tmp := t.TempDir()
	b, err := New(Config{BaseDir: filepath.Join(tmp, "assets")})
	require.NoError(t, err)

	_, err = b.Upload(context.Background(), bytes.NewReader([]byte("x")), cms.UploadParams{ObjectKey: "../escape.txt"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmp, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(tmp, "assets", "escape.txt"))
	assert.NoError(t, err)

	_, err = b.Upload(context.Background(), bytes.NewReader(nil), cms.UploadParams{ObjectKey: ""})
	assert.Error(t, err)
}
