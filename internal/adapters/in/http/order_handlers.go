package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// idempotencyKeyHeader carries the caller-chosen key that makes command
// retries safe. Replays of an already-applied command succeed without
// re-executing.
const idempotencyKeyHeader = "X-Idempotency-Key"

type itemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	Items  []itemRequest `json:"items"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

type payOrderRequest struct {
	PaymentID string `json:"payment_id"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type retryDeadLetterRequest struct {
	EventID   string `json:"event_id"`
	HandlerID string `json:"handler_id"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	key := ctx.Request().Header.Get(idempotencyKeyHeader)
	if key == "" {
		return respondBadRequest(ctx, idempotencyKeyHeader+" header is required")
	}

	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, it := range request.Items {
		item, err := order.NewItem(it.Name, it.Quantity, it.UnitPrice)
		if err != nil {
			return respondError(ctx, err)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.UserID, request.Email, items, key)
	if err != nil {
		return respondBadRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// PayOrder handles POST /api/v1/orders/:id/pay - confirms payment.
func (s *Server) PayOrder(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var request payOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPayOrderCommand(orderID, request.PaymentID, key)
	if err != nil {
		return respondBadRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if handleErr := s.commands.PayOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessOrder handles POST /api/v1/orders/:id/process - starts fulfillment.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewProcessOrderCommand(orderID, key)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if handleErr := s.commands.ProcessOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var request reasonRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason, key)
	if err != nil {
		return respondBadRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	if handleErr := s.commands.CancelOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewShipOrderCommand(orderID, key)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if handleErr := s.commands.ShipOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, key)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if handleErr := s.commands.DeliverOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailPayment handles POST /api/v1/orders/:id/fail-payment.
func (s *Server) FailPayment(ctx echo.Context) error {
	orderID, key, err := s.transitionParams(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var request reasonRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFailPaymentCommand(orderID, request.Reason, key)
	if err != nil {
		return respondBadRequest(ctx, "Invalid failure data: "+err.Error())
	}

	if handleErr := s.commands.FailPayment.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryDeadLetter handles POST /api/v1/dead-letters/retry - re-enqueues one
// dead-lettered delivery with a fresh attempt budget.
func (s *Server) RetryDeadLetter(ctx echo.Context) error {
	var request retryDeadLetterRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	eventID, err := kernel.UUIDFromString(request.EventID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid event id: "+request.EventID)
	}

	cmd, err := commands.NewRetryDeadLetterCommand(eventID, request.HandlerID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid retry data: "+err.Error())
	}

	if handleErr := s.commands.RetryDeadLetter.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// transitionParams extracts the order id from the path and the idempotency
// key from the headers, the two inputs every transition endpoint shares.
func (s *Server) transitionParams(ctx echo.Context) (kernel.UUID, string, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, "", err
	}

	key := ctx.Request().Header.Get(idempotencyKeyHeader)
	if key == "" {
		return kernel.UUID{}, "", errors.New(idempotencyKeyHeader + " header is required")
	}

	return orderID, key, nil
}
