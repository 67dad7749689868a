package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*order.Order, error) {
	args := m.Called(ctx, paymentID)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventStore struct{ mock.Mock }

func (m *MockEventStore) Append(ctx context.Context, evt *event.DomainEvent) (*event.DomainEvent, error) {
	args := m.Called(ctx, evt)
	if stored, ok := args.Get(0).(*event.DomainEvent); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventStore) ListByAggregate(ctx context.Context, aggregateID kernel.UUID) ([]*event.DomainEvent, error) {
	args := m.Called(ctx, aggregateID)
	if events, ok := args.Get(0).([]*event.DomainEvent); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventStore) GetByIdempotencyKey(ctx context.Context, key string) (*event.DomainEvent, error) {
	args := m.Called(ctx, key)
	if evt, ok := args.Get(0).(*event.DomainEvent); ok {
		return evt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventStore) GetByID(ctx context.Context, id kernel.UUID) (*event.DomainEvent, error) {
	args := m.Called(ctx, id)
	if evt, ok := args.Get(0).(*event.DomainEvent); ok {
		return evt, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) EventStore() ports.EventStore {
	args := m.Called()
	return args.Get(0).(ports.EventStore)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventDispatcher struct{ mock.Mock }

func (m *MockEventDispatcher) Dispatch(ctx context.Context, evt *event.DomainEvent) {
	m.Called(ctx, evt)
}

type MockDeadLetterRetrier struct{ mock.Mock }

func (m *MockDeadLetterRetrier) RetryDeadLetter(
	ctx context.Context, eventID kernel.UUID, handlerID string,
) (*retry.Record, error) {
	args := m.Called(ctx, eventID, handlerID)
	if record, ok := args.Get(0).(*retry.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

// itemsFixture returns a small valid set of line items.
func itemsFixture() []order.Item {
	book, _ := order.NewItem("book", 2, 15.5)
	pen, _ := order.NewItem("pen", 1, 2.0)
	return []order.Item{book, pen}
}

// pendingOrderFixture creates a freshly placed order in Pending status.
func pendingOrderFixture(id kernel.UUID) *order.Order {
	o, _, _ := order.NewOrder(id, "user-1", "user@example.com", itemsFixture(), kernel.NewUUID().String())
	return o
}

// createdEventFixture creates the OrderCreated event of a freshly placed order.
func createdEventFixture(t *testing.T, id kernel.UUID) *event.DomainEvent {
	t.Helper()

	_, evt, err := order.NewOrder(id, "user-1", "user@example.com", itemsFixture(), kernel.NewUUID().String())
	if err != nil {
		t.Fatal(err)
	}
	return evt
}

// restoredOrderFixture restores an order snapshot at the given status and
// version, as the repository would after earlier transitions.
func restoredOrderFixture(id kernel.UUID, status order.Status, version int) *order.Order {
	now := time.Now().UTC()
	o, _ := order.RestoreOrder(
		id, "user-1", "user@example.com", "pay-1", itemsFixture(), 33.0,
		status, version, now, now)
	return o
}
