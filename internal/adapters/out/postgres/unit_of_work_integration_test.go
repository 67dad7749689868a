package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgadapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite verifies that the unit of work commits the
// order snapshot and its event atomically, and that a rollback leaves
// neither behind.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *pgadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &eventrepo.EventDTO{}))
	suite.factory = pgadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, events").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrderWithEvent() (*order.Order, *event.DomainEvent) {
	book, err := order.NewItem("book", 1, 12.0)
	suite.Require().NoError(err)

	aggregate, evt, err := order.NewOrder(
		kernel.NewUUID(), "user-1", "user@example.com",
		[]order.Item{book}, kernel.NewUUID().String())
	suite.Require().NoError(err)
	return aggregate, evt
}

func (suite *UnitOfWorkIntegrationTestSuite) countRows() (orders, events int64) {
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orders).Error)
	suite.Require().NoError(suite.db.Model(&eventrepo.EventDTO{}).Count(&events).Error)
	return orders, events
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsSnapshotAndEventTogether() {
	ctx := context.Background()
	aggregate, evt := suite.newOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	_, err := uow.EventStore().Append(ctx, evt)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	orders, events := suite.countRows()
	suite.Equal(int64(1), orders)
	suite.Equal(int64(1), events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_LeavesNeitherBehind() {
	ctx := context.Background()
	aggregate, evt := suite.newOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	_, err := uow.EventStore().Append(ctx, evt)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	orders, events := suite.countRows()
	suite.Equal(int64(0), orders)
	suite.Equal(int64(0), events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Error(uow.Rollback(context.Background()))
}

// uowAdapter exposes the GORM unit of work factory under the command layer's
// factory interface.
type uowAdapter struct {
	factory *pgadapter.GormUnitOfWorkFactory
}

func (a uowAdapter) Create() commands.OrderUoW { return a.factory.Create() }

// silentDispatcher drops committed events; delivery is not under test here.
type silentDispatcher struct{}

func (silentDispatcher) Dispatch(context.Context, *event.DomainEvent) {}

// Two commands racing on the same order must resolve through the version
// guard: one commits, the other loses with a concurrency conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentCommands_ExactlyOneWinsTheVersionRace() {
	ctx := context.Background()
	aggregate, evt := suite.newOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	_, err := uow.EventStore().Append(ctx, evt)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	handler := commands.NewPayOrderCommandHandler(uowAdapter{suite.factory}, silentDispatcher{})

	start := make(chan struct{})
	results := make(chan error, 2)
	for _, paymentID := range []string{"pay-a", "pay-b"} {
		cmd, cmdErr := commands.NewPayOrderCommand(
			aggregate.ID(), paymentID, kernel.NewUUID().String())
		suite.Require().NoError(cmdErr)
		go func() {
			<-start
			results <- handler.Handle(ctx, cmd)
		}()
	}
	close(start)

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		switch handleErr := <-results; {
		case handleErr == nil:
			successes++
		case errors.Is(handleErr, errs.ErrConcurrencyConflict):
			conflicts++
		default:
			suite.Require().NoError(handleErr)
		}
	}
	suite.Equal(1, successes)
	suite.Equal(1, conflicts)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
