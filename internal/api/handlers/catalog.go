package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/service"
)

// CategoryRequest represents a category create or update
type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListCommunities(c *gin.Context) {
	items, err := h.svc.ListCommunities(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetCommunity(c *gin.Context) {
	item, err := h.svc.GetCommunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateCommunity serves both the admin route and the identified-user route.
func (h *CatalogHandler) CreateCommunity(c *gin.Context) {
	var in service.CommunityInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.svc.CreateCommunity(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if id, ok := auth.IdentityFromContext(c); ok {
		slog.Info("Community created", "slug", item.Slug, "caller", id.Actor(), "source", id.Source)
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateCommunity(c *gin.Context) {
	var in service.CommunityInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := h.svc.UpdateCommunity(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteCommunity(c *gin.Context) {
	if err := h.svc.DeleteCommunity(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	items, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name, req.Slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
