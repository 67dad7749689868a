package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/pkg/errs"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps core errors to HTTP status codes. Rejected transitions
// and stale writes are conflicts, not client mistakes: the order exists, the
// requested change just lost to its current state.
func respondError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, errs.ErrSequenceConflict),
		errors.Is(err, retry.ErrNotDeadLettered):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
