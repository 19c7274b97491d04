package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/localroots/marketplace/internal/audit"
	"github.com/localroots/marketplace/internal/events"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService stores the single site-wide settings document.
//
// Writes replace the whole document: keys missing from the new value are
// dropped, never merged with the stored ones. Concurrent writers converge
// on one row through the primary key on the settings key; the last upsert wins.
type SettingsService struct {
	db        *gorm.DB
	publisher events.Publisher
	key       string
}

// NewSettingsService creates a settings store. publisher may be nil.
func NewSettingsService(db *gorm.DB, publisher events.Publisher) *SettingsService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SettingsService{db: db, publisher: publisher, key: models.SiteSettingsKey}
}

// Get returns the stored settings, or an empty object when none are stored.
func (s *SettingsService) Get(ctx context.Context) (map[string]any, error) {
	var doc models.SiteSettings
	err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, storeError(err, "")
	}
	if doc.Value == nil {
		return map[string]any{}, nil
	}
	return doc.Value, nil
}

// Replace stores value as the new settings document, creating it when
// absent, and returns the stored value.
func (s *SettingsService) Replace(ctx context.Context, actor string, value map[string]any) (map[string]any, error) {
	if value == nil {
		value = map[string]any{}
	}

	now := time.Now().UTC()
	doc := models.SiteSettings{
		Key:       s.key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return nil, storeError(err, "")
	}

	if actor != "" {
		if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionReplaceSettings, "settings:"+s.key,
			map[string]any{"keys": len(value)}); err != nil {
			slog.Warn("Failed to write audit log", "action", audit.ActionReplaceSettings, "error", err)
		}
	}

	events.Emit(ctx, s.publisher, events.TopicSettingsUpdated, actor, value)
	slog.Info("Site settings replaced", "actor", actor, "keys", len(value))
	return value, nil
}

// Clear deletes the settings document so consumers fall back to their
// built-in defaults. Clearing an absent document is not an error; the
// result reports whether a document existed.
func (s *SettingsService) Clear(ctx context.Context, actor string) (bool, error) {
	result := s.db.WithContext(ctx).Where("key = ?", s.key).Delete(&models.SiteSettings{})
	if result.Error != nil {
		return false, storeError(result.Error, "")
	}
	existed := result.RowsAffected > 0

	if actor != "" {
		if err := audit.LogAction(s.db.WithContext(ctx), actor, audit.ActionClearSettings, "settings:"+s.key,
			map[string]any{"existed": existed}); err != nil {
			slog.Warn("Failed to write audit log", "action", audit.ActionClearSettings, "error", err)
		}
	}

	events.Emit(ctx, s.publisher, events.TopicSettingsCleared, actor, nil)
	slog.Info("Site settings cleared", "actor", actor, "existed", existed)
	return existed, nil
}
