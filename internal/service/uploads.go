package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/uploads"
	"gorm.io/gorm"
)

// UploadService stores images submitted as data URLs.
type UploadService struct {
	db       *gorm.DB
	uploader uploads.Uploader
	now      func() time.Time
}

// NewUploadService creates a new UploadService.
func NewUploadService(db *gorm.DB, uploader uploads.Uploader) *UploadService {
	return &UploadService{db: db, uploader: uploader, now: time.Now}
}

// UploadImage decodes dataURL, stores it under a unique name derived from
// filename and returns the public URL.
func (s *UploadService) UploadImage(ctx context.Context, actor, dataURL, filename string) (string, error) {
	img, err := uploads.ParseDataURL(dataURL)
	if err != nil {
		if errors.Is(err, uploads.ErrInvalidImage) || errors.Is(err, uploads.ErrUnsupportedImage) ||
			errors.Is(err, uploads.ErrEmptyImage) {
			return "", &ValidationError{Message: err.Error()}
		}
		return "", err
	}

	name, err := uploads.FileName(filename, img.Extension, s.now())
	if err != nil {
		return "", err
	}
	url, err := s.uploader.Put(ctx, name, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	if actor != "" && s.db != nil {
		if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionUploadImage, "upload:"+name,
			map[string]any{"bytes": len(img.Data), "contentType": img.ContentType}); err != nil {
			slog.Warn("Failed to write audit log", "action", audit.ActionUploadImage, "error", err)
		}
	}
	slog.Info("Image uploaded", "name", name, "bytes", len(img.Data))
	return url, nil
}
