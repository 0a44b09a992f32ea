package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdant-labs/plantdex/internal/pkg/response"
	"github.com/verdant-labs/plantdex/internal/service"
)

type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type tagRequest struct {
	Name *string `json:"name"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request body")
		return
	}
	if req.Name == nil {
		response.Error(c, http.StatusBadRequest, "invalid", "name is required")
		return
	}
	tag, err := h.tags.Create(c.Request.Context(), *req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	tag, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tag)
}
