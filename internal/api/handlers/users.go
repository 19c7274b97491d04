package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/service"
)

// SetRoleRequest represents a role change
type SetRoleRequest struct {
	Role string `json:"role"`
}

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers returns all accounts (admin).
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListArtisans returns the public list of sellers.
func (h *UserHandler) ListArtisans(c *gin.Context) {
	users, err := h.users.ListArtisans(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateProfile changes the profile fields of a user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var upd service.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetRole changes the role of a user (admin).
func (h *UserHandler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.SetRole(c.Request.Context(), actor(c), c.Param("id"), req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}
