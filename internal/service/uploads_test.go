package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/localroots/marketplace/internal/uploads"
)

type memoryUploader struct {
	objects map[string][]byte
	err     error
}

func (m *memoryUploader) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.objects[name] = data
	return "https://cdn.example.com/" + name, nil
}

func TestUploadImage(t *testing.T) {
	store := &memoryUploader{objects: map[string][]byte{}}
	svc := NewUploadService(setupTestDB(t), store)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	url, err := svc.UploadImage(context.Background(), "admin@example.com", dataURL, "logo.png")
	if err != nil {
		t.Fatalf("UploadImage failed: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/") || !strings.HasSuffix(url, "-logo.png") {
		t.Errorf("unexpected url %q", url)
	}
	if len(store.objects) != 1 {
		t.Errorf("expected one stored object, got %d", len(store.objects))
	}
}

func TestUploadImage_RejectsBadInput(t *testing.T) {
	svc := NewUploadService(nil, &memoryUploader{objects: map[string][]byte{}})

	for _, in := range []string{"", "not-a-data-url", "data:text/plain;base64,aGk=", "data:image/png;base64,===="} {
		_, err := svc.UploadImage(context.Background(), "", in, "")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("input %q: expected ValidationError, got %v", in, err)
		}
	}
}

func TestUploadImage_StorageFailure(t *testing.T) {
	svc := NewUploadService(nil, &memoryUploader{err: errors.New("disk full")})

	dataURL := "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("gif"))
	_, err := svc.UploadImage(context.Background(), "", dataURL, "")
	var ve *ValidationError
	if err == nil || errors.As(err, &ve) {
		t.Errorf("expected internal error, got %v", err)
	}
}

var _ uploads.Uploader = (*memoryUploader)(nil)
