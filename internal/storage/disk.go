package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore saves uploaded images under a generated name and hands back the
// public URL path they are served from.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file as <unix-ms><original extension> and returns
// its "/uploads/..." reference. Collisions within the same millisecond are
// not guarded against.
func (s *DiskStore) Save(file multipart.File, originalName string) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), strings.ToLower(filepath.Ext(originalName)))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return "/uploads/" + name, nil
}
