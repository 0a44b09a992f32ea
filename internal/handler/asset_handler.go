package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdant-labs/plantdex/internal/pkg/response"
	"github.com/verdant-labs/plantdex/internal/service"
)

type AssetHandler struct {
	assets *service.AssetService
}

func NewAssetHandler(assets *service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assets.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	items := make([]uploadResponse, 0, len(assets))
	for i := range assets {
		items = append(items, newUploadResponse(&assets[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"assets": items})
}
