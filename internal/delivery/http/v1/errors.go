package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{Code: code, Message: message}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

// abortWithServiceError translates the service error taxonomy onto HTTP:
// validation to 400, not-found to 404, everything else to 500.
func (h *handlerImpl) abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgs):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		abort(c, newAPIError(http.StatusNotFound, err.Error()))
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
