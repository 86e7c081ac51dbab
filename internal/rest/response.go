package rest

import (
	"context"
	"errors"
	"net/http"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"
	"materialAdvisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// serviceError maps business errors onto HTTP status codes.
func serviceError(c echo.Context, err error) error {
	var verr *recommend.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: verr.Error(), Field: verr.Field})
	case errors.Is(err, domain.ErrMaterialNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateEvent):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: "request timed out"})
	default:
		logger.Error("request failed",
			"trace_id", recommend.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
