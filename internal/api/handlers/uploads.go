package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/service"
)

// UploadImageRequest carries an image as a base64 data URL
type UploadImageRequest struct {
	DataURL  string `json:"dataUrl"`
	Filename string `json:"filename"`
}

// UploadImageResponse holds the public URL of the stored image
type UploadImageResponse struct {
	URL string `json:"url"`
}

type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores a JPEG, PNG, WebP or GIF data URL and returns its public URL
// @Tags uploads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UploadImageRequest true "Image"
// @Success 200 {object} UploadImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /uploads/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	var req UploadImageRequest
	if !bindJSON(c, &req) {
		return
	}
	url, err := h.svc.UploadImage(c.Request.Context(), actor(c), req.DataURL, req.Filename)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, UploadImageResponse{URL: url})
}
