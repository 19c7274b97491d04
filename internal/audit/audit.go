package audit

import (
	"encoding/json"
	"time"

	"github.com/localroots/marketplace/internal/models"
	"gorm.io/gorm"
)

// LogAction records an audit log entry
func LogAction(db *gorm.DB, actor, action, resource string, details interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil || details == nil {
		detailsJSON = []byte("{}")
	}

	log := models.AuditLog{
		Actor:       actor,
		Action:      action,
		Resource:    resource,
		DetailsJSON: string(detailsJSON),
		Timestamp:   time.Now(),
	}

	return db.Create(&log).Error
}

// Audit actions constants
const (
	ActionReplaceSettings = "replace_settings"
	ActionClearSettings   = "clear_settings"
	ActionUpdateUserRole  = "update_user_role"
	ActionDeleteUser      = "delete_user"
	ActionCreateProduct   = "create_product"
	ActionDeleteProduct   = "delete_product"
	ActionDeleteOrder     = "delete_order"
	ActionClearVisits     = "clear_visits"
	ActionUploadImage     = "upload_image"
)
