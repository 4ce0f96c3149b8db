package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/domain/services"
	"craftorders/internal/pkg/errs"
)

// respondError maps a use-case error onto an HTTP status:
//
//	422 unprocessable  resolvable items that cannot be ordered as requested
//	404 not found      missing order, conversation or item references
//	409 conflict       illegal status transition, quote not required
//	400 bad request    malformed values out of the command constructors
//	500 otherwise
//
// ItemsNotFoundError unwraps to ErrObjectNotFound and lands in the 404 class.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrItemNotAvailable),
		errors.Is(err, services.ErrColorNotAvailable):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err)
	case errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, order.ErrQuoteNotRequired):
		return errorJSON(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func errorJSON(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
