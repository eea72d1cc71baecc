package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilovedelay/i-love-delay/internal/services"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalError() apiError {
	return newAPIError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// abortWithServiceError translates the service error taxonomy into
// HTTP statuses: validation problems map to 400, missing records to
// 404 and everything else to a generic 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyTaskName),
		errors.Is(err, services.ErrEmptyExcuseContent),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidInteractionType),
		errors.Is(err, services.ErrMissingField):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrPostNotFound):
		abort(c, newNotFoundError(err.Error()))
	default:
		abort(c, newInternalError())
	}
}
