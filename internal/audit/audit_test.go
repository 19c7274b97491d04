package audit

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestLogAction(t *testing.T) {
	db := setupTestDB(t)

	err := LogAction(db, "admin@example.com", ActionReplaceSettings, "settings:site", map[string]any{"keys": 2})
	if err != nil {
		t.Fatalf("LogAction failed: %v", err)
	}

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("failed to load audit entry: %v", err)
	}
	if entry.Actor != "admin@example.com" || entry.Action != ActionReplaceSettings {
		t.Errorf("unexpected entry %+v", entry)
	}

	var details map[string]any
	if err := json.Unmarshal([]byte(entry.DetailsJSON), &details); err != nil {
		t.Fatalf("details are not JSON: %v", err)
	}
	if details["keys"] != float64(2) {
		t.Errorf("unexpected details %v", details)
	}
}

func TestLogAction_NilDetails(t *testing.T) {
	db := setupTestDB(t)

	if err := LogAction(db, "", ActionClearSettings, "settings:site", nil); err != nil {
		t.Fatalf("LogAction failed: %v", err)
	}

	var entry models.AuditLog
	db.First(&entry)
	if entry.DetailsJSON != "{}" {
		t.Errorf("expected empty details, got %q", entry.DetailsJSON)
	}
}
