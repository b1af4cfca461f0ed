package storage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcoelho/marketplace-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)

	file := memFile{bytes.NewReader([]byte("image-bytes"))}

	url, err := store.Save(file, "Foto do Produto.JPG")
	require.NoError(t, err)

	// Generated name: timestamp plus the original extension, lowercased.
	assert.Regexp(t, `^/uploads/\d+\.jpg$`, url)

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestDiskStore_SaveWithoutExtension(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Save(memFile{bytes.NewReader([]byte("x"))}, "noext")
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/\d+$`, url)
}

func TestNewDiskStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
