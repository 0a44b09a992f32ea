package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdant-labs/plantdex/internal/pkg/response"
	"github.com/verdant-labs/plantdex/internal/service"
)

type PlantHandler struct {
	plants *service.PlantService
}

func NewPlantHandler(plants *service.PlantService) *PlantHandler {
	return &PlantHandler{plants: plants}
}

type plantRequest struct {
	Name           *string `json:"name"`
	ScientificName *string `json:"scientific_name"`
	LastWatered    *string `json:"last_watered"`
	Notes          *string `json:"notes"`
}

type addTagRequest struct {
	TagID *int64 `json:"tag_id"`
}

func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.plants.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plants": plants})
}

func (h *PlantHandler) Create(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}
	if req.Name == nil || req.ScientificName == nil {
		response.Error(c, http.StatusBadRequest, "invalid", "name and scientific_name are required")
		return
	}
	plant, err := h.plants.Create(c.Request.Context(), *req.Name, *req.ScientificName, req.LastWatered, req.Notes)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, plant)
}

func (h *PlantHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	plant, err := h.plants.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plant)
}

// Update applies partially-supplied fields and answers with the simple
// (tag-less) plant form, keeping the original update contract.
func (h *PlantHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}
	plant, err := h.plants.Update(c.Request.Context(), id, service.PlantUpdate{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		LastWatered:    req.LastWatered,
		Notes:          req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, plant)
}

func (h *PlantHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	plant, err := h.plants.Delete(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plant)
}

func (h *PlantHandler) AddTag(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req addTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}
	if req.TagID == nil {
		response.Error(c, http.StatusBadRequest, "invalid", "tag_id is required")
		return
	}
	plant, err := h.plants.AddTag(c.Request.Context(), id, *req.TagID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plant)
}

func (h *PlantHandler) NotesHTML(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	html, err := h.plants.RenderNotes(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"html": html})
}
