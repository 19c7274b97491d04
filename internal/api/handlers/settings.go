package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/service"
)

// ClearSettingsMessage is the body message of a successful clear.
const ClearSettingsMessage = "Site settings cleared. Will fall back to defaults."

// ClearSettingsResponse is returned after the settings document is cleared.
type ClearSettingsResponse struct {
	Message string `json:"message"`
}

type SettingsHandler struct {
	svc *service.SettingsService
}

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetSettings godoc
// @Summary Get site settings
// @Description Returns the site settings document, or an empty object when none is stored
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	value, err := h.svc.Get(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, value)
}

// ReplaceSettings godoc
// @Summary Replace site settings
// @Description Stores the request body as the new settings document. Keys not present are dropped.
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param settings body map[string]interface{} true "Settings document"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) ReplaceSettings(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	value, err := decodeSettings(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Settings must be a JSON object"})
		return
	}

	stored, err := h.svc.Replace(c.Request.Context(), actor(c), value)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ClearSettings godoc
// @Summary Clear site settings
// @Description Deletes the settings document so clients fall back to their defaults. Clearing twice succeeds.
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ClearSettingsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /settings [delete]
func (h *SettingsHandler) ClearSettings(c *gin.Context) {
	if _, err := h.svc.Clear(c.Request.Context(), actor(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClearSettingsResponse{Message: ClearSettingsMessage})
}

// decodeSettings parses a settings body. Numbers stay json.Number so they
// are stored exactly as sent. An empty body or null yields an empty object.
func decodeSettings(raw []byte) (map[string]any, error) {
	value := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return value, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after settings object")
	}
	if value == nil {
		value = map[string]any{}
	}
	return value, nil
}
