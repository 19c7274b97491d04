package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	dbutil "github.com/localroots/marketplace/internal/db"
	"gorm.io/gorm"
)

// HealthResponse reports liveness and database readiness
type HealthResponse struct {
	OK      bool `json:"ok"`
	DBReady bool `json:"dbReady"`
}

// HealthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		c.JSON(http.StatusOK, HealthResponse{
			OK:      true,
			DBReady: db != nil && dbutil.Ping(ctx, db) == nil,
		})
	}
}
