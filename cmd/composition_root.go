package cmd

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/retryrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/dispatch"
	"orderflow/internal/jobs"
)

// CompositionRoot wires adapters, the dispatch pipeline and use case
// handlers together. Everything downstream of config and the database
// connection is constructed here and nowhere else.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	producer    *kafka.Producer
	registry    *dispatch.HandlerRegistry
	coordinator *dispatch.Coordinator
	dispatcher  *dispatch.Dispatcher
	jobManager  *jobs.JobManager

	logger *slog.Logger
}

// NewCompositionRoot builds the full object graph. The Kafka event publisher
// is registered for every event type, so each committed event is delivered
// to the outside world with retry bookkeeping.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	backoff, err := retry.NewBackoff(
		config.RetryBaseDelay, config.RetryMaxDelay, config.RetryMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("build backoff policy: %w", err)
	}

	producer, err := kafka.NewProducer(config.KafkaBrokers, config.KafkaEventsTopic, logger)
	if err != nil {
		return nil, fmt.Errorf("build kafka producer: %w", err)
	}

	publisher, err := kafka.NewEventPublisher(producer, logger)
	if err != nil {
		return nil, fmt.Errorf("build event publisher: %w", err)
	}

	registry := dispatch.NewHandlerRegistry()
	for _, eventType := range []event.Type{
		event.OrderCreated,
		event.OrderPaid,
		event.OrderProcessing,
		event.OrderCancelled,
		event.OrderShipped,
		event.OrderDelivered,
		event.PaymentFailed,
	} {
		registry.Register(eventType, publisher)
	}

	coordinator, err := dispatch.NewCoordinator(
		retryrepo.NewGormRetryStore(gormDB),
		eventrepo.NewGormEventStore(gormDB),
		registry,
		backoff,
		config.AttemptTimeout,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("build dispatch coordinator: %w", err)
	}

	dispatcher, err := dispatch.NewDispatcher(registry, coordinator, logger)
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	return &CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		producer:    producer,
		registry:    registry,
		coordinator: coordinator,
		dispatcher:  dispatcher,
		jobManager:  jobs.NewJobManager(coordinator, logger),
		logger:      logger,
	}, nil
}

// JobManager returns the background job manager.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close drains in-flight deliveries and releases external resources.
func (c *CompositionRoot) Close() error {
	c.dispatcher.Wait()
	return c.producer.Close()
}

// NewHTTPServer builds the REST server over the command and query handlers.
func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(
		httpin.CommandHandlers{
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			PayOrder:        c.CreatePayOrderCommandHandler(),
			ProcessOrder:    c.CreateProcessOrderCommandHandler(),
			CancelOrder:     c.CreateCancelOrderCommandHandler(),
			ShipOrder:       c.CreateShipOrderCommandHandler(),
			DeliverOrder:    c.CreateDeliverOrderCommandHandler(),
			FailPayment:     c.CreateFailPaymentCommandHandler(),
			RetryDeadLetter: c.CreateRetryDeadLetterCommandHandler(),
		},
		httpin.QueryHandlers{
			GetOrderEvents:    queries.NewGetOrderEventsQueryHandler(c.gormDB),
			GetOrderHistory:   queries.NewGetOrderHistoryQueryHandler(c.gormDB),
			GetOrdersByUser:   queries.NewGetOrdersByUserQueryHandler(c.gormDB),
			GetOrdersByStatus: queries.NewGetOrdersByStatusQueryHandler(c.gormDB),
			GetOrderByPayment: queries.NewGetOrderByPaymentQueryHandler(c.gormDB),
			GetDeadLetters:    queries.NewGetDeadLettersQueryHandler(c.gormDB),
		},
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	return commands.NewFailPaymentCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRetryDeadLetterCommandHandler() commands.RetryDeadLetterCommandHandler {
	return commands.NewRetryDeadLetterCommandHandler(c.coordinator)
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
