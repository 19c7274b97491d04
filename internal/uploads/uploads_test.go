package uploads

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngBytes)

	tests := []struct {
		name    string
		in      string
		wantErr error
		wantExt string
	}{
		{"png", "data:image/png;base64," + payload, nil, "png"},
		{"jpeg upper-case mime", "data:IMAGE/JPEG;base64," + payload, nil, "jpg"},
		{"unpadded", "data:image/gif;base64," + strings.TrimRight(payload, "="), nil, "gif"},
		{"not a data url", "https://example.com/a.png", ErrInvalidImage, ""},
		{"missing base64 marker", "data:image/png," + payload, ErrInvalidImage, ""},
		{"garbage payload", "data:image/png;base64,@@@", ErrInvalidImage, ""},
		{"unsupported type", "data:image/svg+xml;base64," + payload, ErrUnsupportedImage, ""},
		{"empty", "", ErrInvalidImage, ""},
		{"empty payload", "data:image/png;base64,====", ErrEmptyImage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseDataURL(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataURL failed: %v", err)
			}
			if img.Extension != tt.wantExt {
				t.Errorf("expected extension %q, got %q", tt.wantExt, img.Extension)
			}
			if string(img.Data) != string(pngBytes) {
				t.Errorf("decoded data mismatch")
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("../my photo!.png"); got != "..myphoto.png" {
		t.Errorf("unexpected sanitized name %q", got)
	}
	long := strings.Repeat("a", 80)
	if got := SanitizeName(long); len(got) != 50 {
		t.Errorf("expected 50 chars, got %d", len(got))
	}
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	name, err := FileName("hero.png", "png", now)
	if err != nil {
		t.Fatalf("FileName failed: %v", err)
	}
	if !regexp.MustCompile(`^1700000000000-[a-z0-9]{12}-hero\.png$`).MatchString(name) {
		t.Errorf("unexpected name %q", name)
	}

	name, err = FileName("", "jpg", now)
	if err != nil {
		t.Fatalf("FileName failed: %v", err)
	}
	if !regexp.MustCompile(`^1700000000000-[a-z0-9]{12}\.jpg$`).MatchString(name) {
		t.Errorf("unexpected name %q", name)
	}

	a, _ := FileName("x", "gif", now)
	b, _ := FileName("x", "gif", now)
	if a == b {
		t.Error("expected unique names")
	}
}

func TestLocalUploader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	u, err := NewLocalUploader(dir, "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("NewLocalUploader failed: %v", err)
	}

	url, err := u.Put(context.Background(), "a.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if url != "http://localhost:8080/uploads/a.png" {
		t.Errorf("unexpected url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Error("file content mismatch")
	}

	if _, err := u.Put(context.Background(), "../escape.png", "image/png", pngBytes); err == nil {
		t.Error("expected error for path traversal")
	}
}

func TestObjectBaseURL(t *testing.T) {
	tests := []struct {
		name                                string
		bucket, region, endpoint, publicURL string
		want                                string
	}{
		{"public url wins", "media", "us-east-1", "http://minio:9000", "https://cdn.example.com/", "https://cdn.example.com"},
		{"endpoint", "media", "us-east-1", "http://minio:9000/", "", "http://minio:9000/media"},
		{"aws", "media", "eu-west-1", "", "", "https://media.s3.eu-west-1.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objectBaseURL(tt.bucket, tt.region, tt.endpoint, tt.publicURL); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
