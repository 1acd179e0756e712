package http

import (
	"errors"
	"net/http"

	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to its HTTP status. Business rule kinds
// are checked first so that an overdraft, which also matches
// ErrInvalidAmount, is reported as a refused settlement.
func statusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrConcurrentModification:
		return http.StatusConflict
	case errs.ErrInvalidAmount, errs.ErrReasonRequired:
		return http.StatusBadRequest
	case nil:
	default:
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func toError(err error) Error {
	code := statusFor(err)
	e := Error{Code: code, Message: err.Error()}
	if kind := errs.Kind(err); kind != nil {
		e.Kind = kind.Error()
	}
	if code == http.StatusInternalServerError {
		e.Message = http.StatusText(code)
	}
	return e
}

func writeError(ctx echo.Context, err error) error {
	body := toError(err)
	if body.Code == http.StatusInternalServerError {
		loggerFrom(ctx).WithError(err).Error("request failed")
	}
	return ctx.JSON(body.Code, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
