// Package uploads decodes image data URLs and stores the images on the
// local filesystem or in an S3-compatible bucket.
package uploads

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/localroots/marketplace/internal/config"
)

// Errors returned by ParseDataURL.
var (
	ErrInvalidImage     = errors.New("Invalid image data")
	ErrUnsupportedImage = errors.New("Unsupported image type")
	ErrEmptyImage       = errors.New("Empty image")
)

const (
	maxNameLength = 50
	idAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength      = 12
)

var (
	dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)
	unsafeNameChar = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Image is a decoded data URL.
type Image struct {
	ContentType string
	Extension   string
	Data        []byte
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" string holding a
// JPEG, PNG, WebP or GIF image.
func ParseDataURL(dataURL string) (*Image, error) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(dataURL))
	if m == nil {
		return nil, ErrInvalidImage
	}
	mime := strings.ToLower(strings.TrimSpace(m[1]))
	ext, ok := extensions[mime]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		// Some clients strip the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(m[2], "="))
		if err != nil {
			return nil, ErrInvalidImage
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return &Image{ContentType: mime, Extension: ext, Data: data}, nil
}

// SanitizeName keeps [A-Za-z0-9_.-] and truncates to 50 characters.
func SanitizeName(name string) string {
	safe := unsafeNameChar.ReplaceAllString(name, "")
	if len(safe) > maxNameLength {
		safe = safe[:maxNameLength]
	}
	return safe
}

// FileName builds a unique object name "<unixms>-<id>[-<name>].<ext>".
// The extension is not repeated when the sanitized name already ends with it.
func FileName(original, ext string, now time.Time) (string, error) {
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("generating upload id: %w", err)
	}
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), id)
	if safe := SanitizeName(original); safe != "" {
		name += "-" + safe
	}
	if !strings.HasSuffix(strings.ToLower(name), "."+ext) {
		name += "." + ext
	}
	return name, nil
}

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// New creates the uploader selected by configuration. baseURL is the
// public URL of the API, used for locally stored files.
func New(ctx context.Context, cfg config.UploadsConfig, baseURL string) (Uploader, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalUploader(cfg.Dir, baseURL+cfg.URLPrefix)
	case "s3":
		return NewS3Uploader(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint, cfg.S3PublicURL)
	default:
		return nil, fmt.Errorf("unsupported uploads backend: %s", cfg.Backend)
	}
}
