// Package http exposes the order lifecycle over REST. The adapter is thin:
// it binds requests, builds commands and queries, and maps core errors to
// status codes; every decision happens in the application layer.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
)

// CommandHandlers groups the write-side handlers the server dispatches to.
type CommandHandlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	PayOrder        commands.PayOrderCommandHandler
	ProcessOrder    commands.ProcessOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	ShipOrder       commands.ShipOrderCommandHandler
	DeliverOrder    commands.DeliverOrderCommandHandler
	FailPayment     commands.FailPaymentCommandHandler
	RetryDeadLetter commands.RetryDeadLetterCommandHandler
}

// QueryHandlers groups the read-side handlers the server dispatches to.
type QueryHandlers struct {
	GetOrderEvents    queries.GetOrderEventsQueryHandler
	GetOrderHistory   queries.GetOrderHistoryQueryHandler
	GetOrdersByUser   queries.GetOrdersByUserQueryHandler
	GetOrdersByStatus queries.GetOrdersByStatusQueryHandler
	GetOrderByPayment queries.GetOrderByPaymentQueryHandler
	GetDeadLetters    queries.GetDeadLettersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/pay", s.PayOrder)
	api.POST("/orders/:id/process", s.ProcessOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/fail-payment", s.FailPayment)

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id/events", s.GetOrderEvents)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/payments/:paymentID/order", s.GetOrderByPayment)

	api.GET("/dead-letters", s.GetDeadLetters)
	api.POST("/dead-letters/retry", s.RetryDeadLetter)
}
