package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/service"
)

// RecordVisitRequest is sent by the frontend on every page view
type RecordVisitRequest struct {
	Path      string `json:"path"`
	UserAgent string `json:"userAgent"`
}

// ClearVisitsResponse reports how many visits were removed
type ClearVisitsResponse struct {
	OK           bool   `json:"ok"`
	DeletedCount int64  `json:"deletedCount"`
	Message      string `json:"message"`
}

type VisitHandler struct {
	svc *service.VisitService
}

func NewVisitHandler(svc *service.VisitService) *VisitHandler {
	return &VisitHandler{svc: svc}
}

func (h *VisitHandler) RecordVisit(c *gin.Context) {
	var req RecordVisitRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.Record(c.Request.Context(), req.Path, req.UserAgent); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, OKResponse{OK: true})
}

func (h *VisitHandler) ListVisits(c *gin.Context) {
	visits, err := h.svc.List(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

func (h *VisitHandler) ClearVisits(c *gin.Context) {
	deleted, err := h.svc.Clear(c.Request.Context(), actor(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClearVisitsResponse{
		OK:           true,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("Successfully cleared %d visitor records", deleted),
	})
}
