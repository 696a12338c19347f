package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/types"
)

const msgInternal = "Something went wrong. Please try again."

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:          http.StatusBadRequest,
	apperr.KindConflict:            http.StatusConflict,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindUnauthorized:        http.StatusUnauthorized,
	apperr.KindForbidden:           http.StatusForbidden,
	apperr.KindRateLimited:         http.StatusTooManyRequests,
	apperr.KindStorage:             http.StatusInternalServerError,
	apperr.KindProviderAuth:        http.StatusServiceUnavailable,
	apperr.KindProviderRateLimit:   http.StatusServiceUnavailable,
	apperr.KindProviderResponse:    http.StatusBadGateway,
	apperr.KindProviderTimeout:     http.StatusGatewayTimeout,
	apperr.KindUnsupportedFormat:   http.StatusUnsupportedMediaType,
	apperr.KindInsufficientContent: http.StatusUnprocessableEntity,
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind apperr.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes the client-facing form of err. Causes are logged, never
// returned; storage failures and unclassified errors get a generic message.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Message: msgInternal})
		return
	}

	status := StatusFor(appErr.Kind)
	body := types.ErrorResponse{Message: appErr.Message, Field: appErr.Field}

	entry := log.WithFields(logrus.Fields{
		"kind":   appErr.Kind,
		"status": status,
		"path":   c.FullPath(),
	})
	if appErr.Err != nil {
		entry = entry.WithError(appErr.Err)
	}
	switch {
	case appErr.Kind == apperr.KindStorage:
		entry.WithField("op", appErr.Message).Error("storage failure")
		body = types.ErrorResponse{Message: msgInternal}
	case status >= http.StatusInternalServerError:
		entry.Error("request failed")
	default:
		entry.Debug("request rejected")
	}

	c.AbortWithStatusJSON(status, body)
}
