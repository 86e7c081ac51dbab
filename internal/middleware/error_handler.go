package middleware

import (
	"errors"
	"net/http"

	"materialAdvisor/pkg/logger"
	jsonres "materialAdvisor/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers, including echo's own
// routing errors, as response envelopes.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		logger.Error("unhandled error", "path", c.Path(), "error", err)
	}

	var resErr error
	if c.Request().Method == http.MethodHead {
		resErr = c.NoContent(code)
	} else {
		resErr = c.JSON(code, jsonres.Error(errorCode(code), msg, nil))
	}
	if resErr != nil {
		logger.Error("failed to write error response", "error", resErr)
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
