package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verdant-labs/plantdex/internal/model"
	"github.com/verdant-labs/plantdex/internal/pkg/response"
	"github.com/verdant-labs/plantdex/internal/service"
)

type UploadHandler struct {
	assets *service.AssetService
}

func NewUploadHandler(assets *service.AssetService) *UploadHandler {
	return &UploadHandler{assets: assets}
}

type uploadRequest struct {
	ImageData string `json:"image_data"`
}

type uploadResponse struct {
	URL       string    `json:"url"`
	Extension string    `json:"extension"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *UploadHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}
	asset, err := h.assets.CreateFromDataURI(c.Request.Context(), req.ImageData)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, newUploadResponse(asset))
}

func newUploadResponse(asset *model.Asset) uploadResponse {
	return uploadResponse{
		URL:       asset.URL(),
		Extension: asset.Extension,
		Width:     asset.Width,
		Height:    asset.Height,
		CreatedAt: asset.CreatedAt,
	}
}
