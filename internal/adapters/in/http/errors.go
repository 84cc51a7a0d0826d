package http

import (
	"errors"
	"log/slog"
	"net/http"

	"supply/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[errs.Kind]int{
	errs.KindValidation:        http.StatusBadRequest,
	errs.KindAuthorization:     http.StatusForbidden,
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindInvalidState:      http.StatusConflict,
	errs.KindInvalidTransition: http.StatusConflict,
	errs.KindConflict:          http.StatusConflict,
	errs.KindStorage:           http.StatusServiceUnavailable,
}

// errorResponse maps err to a status code and body. Echo's own errors
// (unknown route, bad binding) keep their status and are tagged as
// validation failures.
func errorResponse(err error) (int, Error) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		kind := errs.KindValidation
		switch he.Code {
		case http.StatusNotFound:
			kind = errs.KindNotFound
		case http.StatusServiceUnavailable, http.StatusInternalServerError:
			kind = errs.KindStorage
		}
		return he.Code, Error{Code: string(kind), Message: msg, Retryable: kind.Retryable()}
	}

	kind := errs.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if kind == errs.KindStorage {
		message = "storage is unavailable, retry the request"
	}
	return status, Error{Code: string(kind), Message: message, Retryable: kind.Retryable()}
}

// NewErrorHandler renders every error as the Error body. Storage failures
// are logged because their message is hidden from the caller.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "error response not written", "error", err)
		}
	}
}
