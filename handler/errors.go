package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/pkg/logger"
	"github.com/AnTengye/saasledger/service"
)

// respondError maps store and catalog errors to a status and writes the
// standard {"error": ...} body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAppNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrUnknownApp):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrStoreFull):
		status = http.StatusConflict
	case errors.Is(err, model.ErrMissingAppID):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
