package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/core/domain"
	"taskhub/pkg/apierrors"
)

// respondError maps a service error onto a status code and a translated
// message. Unexpected errors are logged and answered with failKey.
func respondError(c *gin.Context, err error, notFoundKey, failKey string) {
	lang := middleware.GetLang(c)

	var status int
	var key string
	switch {
	case errors.Is(err, domain.ErrInvariantViolation):
		status, key = http.StatusUnprocessableEntity, apierrors.MsgInvariantViolation
	case errors.Is(err, domain.ErrNotFound):
		status, key = http.StatusNotFound, notFoundKey
	case errors.Is(err, domain.ErrForbidden):
		status, key = http.StatusForbidden, apierrors.MsgForbidden
	case errors.Is(err, domain.ErrConcurrencyConflict):
		status, key = http.StatusConflict, apierrors.MsgConcurrency
	case errors.Is(err, domain.ErrConflict):
		status, key = http.StatusConflict, apierrors.MsgConflict
	default:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
		return
	}

	details := err.Error()
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		details = domainErr.Message
	}
	c.JSON(status, apierrors.CreateErrorWithDetails(status, key, lang, details))
}

func respondBadRequest(c *gin.Context, key string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, key, middleware.GetLang(c)),
	)
}

// paramID reads a positive integer path parameter. It answers 400 with key
// and returns false when the value is not usable.
func paramID(c *gin.Context, name, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, key)
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter.
func queryID(c *gin.Context, name, key string) (*int64, bool) {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, key)
		return nil, false
	}
	return &id, true
}
