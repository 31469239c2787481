package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/pkg/apperrors"
	"github.com/savi/placement-portal/internal/pkg/logger"
)

// HandleAPIError maps an application error onto an HTTP response. Internal
// errors are logged with full detail but returned opaque so nothing about
// the backing systems leaks to clients.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrRecipientNotFound),
		errors.Is(err, apperrors.ErrFileNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrAlreadyApplied),
		errors.Is(err, apperrors.ErrRegistrationNoAlreadyExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidFormat),
		errors.Is(err, apperrors.ErrInvalidRegistrationNo),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrFileTypeInvalid),
		errors.Is(err, apperrors.ErrNoFileProvided),
		errors.Is(err, apperrors.ErrInvalidFilePath):
		status = http.StatusBadRequest
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).Msg("Unhandled error")
	}

	c.JSON(status, dto.NewErrorResponse(message))
}

// RequestLogger logs each request with its status and caller identity when
// one is present.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		event := logger.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		} else if c.Writer.Status() >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("identity", c.GetString(ContextIdentity)).
			Msg("Request handled")
	}
}
