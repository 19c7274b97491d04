package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

const (
	defaultVisitList = 50
	maxVisitList     = 500
	maxUserAgent     = 512
)

// VisitService records and reports page visits.
type VisitService struct {
	db *gorm.DB
}

// NewVisitService creates a new VisitService.
func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

// Record stores a visit. Empty paths are recorded as "/".
func (s *VisitService) Record(ctx context.Context, path, userAgent string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	if len(userAgent) > maxUserAgent {
		userAgent = userAgent[:maxUserAgent]
	}
	visit := models.Visit{Path: path, UserAgent: userAgent}
	if err := s.db.WithContext(ctx).Create(&visit).Error; err != nil {
		return storeError(err, "")
	}
	return nil
}

// ClampVisitLimit bounds a requested list size to [1, 500]; non-positive
// values select the default of 50.
func ClampVisitLimit(limit int) int {
	if limit <= 0 {
		return defaultVisitList
	}
	if limit > maxVisitList {
		return maxVisitList
	}
	return limit
}

// List returns the most recent visits.
func (s *VisitService) List(ctx context.Context, limit int) ([]models.Visit, error) {
	var visits []models.Visit
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").
		Limit(ClampVisitLimit(limit)).Find(&visits).Error
	if err != nil {
		return nil, storeError(err, "")
	}
	return visits, nil
}

// Clear deletes every visit and returns how many were removed.
func (s *VisitService) Clear(ctx context.Context, actor string) (int64, error) {
	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Visit{})
	if result.Error != nil {
		return 0, storeError(result.Error, "")
	}
	if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionClearVisits, "visits",
		map[string]int64{"deleted": result.RowsAffected}); err != nil {
		slog.Warn("Failed to write audit log", "action", audit.ActionClearVisits, "error", err)
	}
	return result.RowsAffected, nil
}
