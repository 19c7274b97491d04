package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes files into a directory served under a public URL.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates the directory if needed.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory files are written to.
func (u *LocalUploader) Dir() string {
	return u.dir
}

// Put writes data to <dir>/<name>.
func (u *LocalUploader) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return u.baseURL + "/" + name, nil
}
