package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
)

// StatusFor maps an error returned by a handler onto an HTTP status
func StatusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, entities.ErrMalformedRecord):
		return http.StatusInternalServerError
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidQuery),
		errors.Is(err, entities.ErrConsentRequired):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a handler as JSON
func ErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var verr *entities.ValidationError
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = he.Message
			if m, ok := he.Message.(string); ok {
				msg = ErrorResponse{Message: m}
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.Is(err, entities.ErrMalformedRecord):
			msg = ErrorResponse{Message: err.Error()}
		case errors.As(err, &verr):
			code = http.StatusBadRequest
			msg = ErrorResponse{Message: "validation failed", Details: verr.Fields}
		default:
			code = StatusFor(err)
			switch code {
			case http.StatusInternalServerError:
				msg = ErrorResponse{Message: http.StatusText(code)}
			case http.StatusUnauthorized:
				msg = ErrorResponse{Message: "Invalid credentials"}
			default:
				msg = ErrorResponse{Message: err.Error()}
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Request failed", "error", err, "status", code, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
