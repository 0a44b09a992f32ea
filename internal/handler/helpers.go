package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
	"github.com/verdant-labs/plantdex/internal/pkg/response"
)

// parseID reads the :id path parameter. A non-numeric id behaves like a
// missing entity, matching the integer-typed routes of the original API.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErr.ErrNotFound
	}
	return id, nil
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, appErr.ErrUnsupportedFormat):
		response.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", err.Error())
	case errors.Is(err, appErr.ErrMalformedPayload):
		response.Error(c, http.StatusUnprocessableEntity, "malformed_payload", err.Error())
	case errors.Is(err, appErr.ErrCorruptImage):
		response.Error(c, http.StatusUnprocessableEntity, "corrupt_image", err.Error())
	case errors.Is(err, appErr.ErrStorageUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "storage unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
