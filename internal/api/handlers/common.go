package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/service"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a deletion.
type OKResponse struct {
	OK bool `json:"ok"`
}

// handleServiceError maps service-layer errors to HTTP status codes.
func handleServiceError(c *gin.Context, err error) {
	var (
		notFoundErr    *service.NotFoundError
		validationErr  *service.ValidationError
		authnErr       *service.AuthenticationError
		conflictErr    *service.ConflictError
		unavailableErr *service.BackendUnavailableError
	)
	switch {
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
	case errors.As(err, &authnErr):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: authnErr.Message})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflictErr.Message})
	case errors.As(err, &unavailableErr):
		slog.Error("storage backend unavailable", "path", c.Request.URL.Path, "error", unavailableErr.Err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Database unavailable"})
	default:
		slog.Error("unhandled service error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// bindJSON decodes the request body into obj. An empty body leaves obj
// untouched.
func bindJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// actor returns the audit label of the caller, empty when anonymous.
func actor(c *gin.Context) string {
	id, _ := auth.IdentityFromContext(c)
	return id.Actor()
}

// queryInt parses an integer query parameter, returning 0 when absent or malformed.
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}
