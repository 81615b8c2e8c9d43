package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physique-coach/internal/analysis"
	"physique-coach/internal/service"
	"physique-coach/internal/store"
)

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// statusFor maps a service error onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrProfileNotFound), errors.Is(err, store.ErrMeasurementNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, analysis.ErrMissingInput),
		errors.Is(err, analysis.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError writes err with its mapped status. Internal errors are
// logged and replaced with a generic message.
func (h *AthleteHandler) abortWithServiceError(c *gin.Context, err error, action string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(action, "path", c.Request.URL.Path, "error", err)
		abortWithError(c, code, "Failed to "+action+".")
		return
	}
	abortWithError(c, code, err.Error())
}
