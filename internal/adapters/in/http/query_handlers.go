package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
)

// GetOrders handles GET /api/v1/orders - lists orders filtered by user_id or
// status. Exactly one filter must be supplied; unfiltered listing is not
// exposed.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID := ctx.QueryParam("user_id")
	status := ctx.QueryParam("status")

	switch {
	case userID != "" && status != "":
		return respondBadRequest(ctx, "user_id and status filters are mutually exclusive")
	case userID != "":
		query, err := queries.NewGetOrdersByUserQuery(userID)
		if err != nil {
			return respondBadRequest(ctx, err.Error())
		}
		orders, err := s.queries.GetOrdersByUser.Handle(ctx.Request().Context(), query)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, orders)
	case status != "":
		query, err := queries.NewGetOrdersByStatusQuery(status)
		if err != nil {
			return respondBadRequest(ctx, err.Error())
		}
		orders, err := s.queries.GetOrdersByStatus.Handle(ctx.Request().Context(), query)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, orders)
	default:
		return respondBadRequest(ctx, "either user_id or status filter is required")
	}
}

// GetOrderEvents handles GET /api/v1/orders/:id/events - the full event log
// of one order in sequence order.
func (s *Server) GetOrderEvents(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	events, err := s.queries.GetOrderEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - the status
// timeline derived from the event log.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	history, err := s.queries.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, history)
}

// GetOrderByPayment handles GET /api/v1/payments/:paymentID/order.
func (s *Server) GetOrderByPayment(ctx echo.Context) error {
	query, err := queries.NewGetOrderByPaymentQuery(ctx.Param("paymentID"))
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	response, err := s.queries.GetOrderByPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeadLetters handles GET /api/v1/dead-letters - deliveries that
// exhausted their retry budget, most recent first.
func (s *Server) GetDeadLetters(ctx echo.Context) error {
	deadLetters, err := s.queries.GetDeadLetters.Handle(
		ctx.Request().Context(), queries.NewGetDeadLettersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deadLetters)
}
