package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the unit of work and the audit sink built on
// it against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(postgres_adapter.Migrate(suite.db))
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_line_items, batch_counters, fulfillment_run_orders, fulfillment_run_batches",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	_, err := uow.CounterRepository().CreateIfAbsent(ctx, "Sydney_2024-05-14_sameday", ports.CounterDocument{})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().AddOrders(ctx, []ports.AuditOrderRow{orderRow("run-1", "#1")}))

	_, found, err := uow.CounterRepository().Get(ctx, "Sydney_2024-05-14_sameday")
	suite.Require().NoError(err)
	suite.True(found, "counter should be visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, found, err = suite.factory.Create().CounterRepository().Get(ctx, "Sydney_2024-05-14_sameday")
	suite.Require().NoError(err)
	suite.False(found)
	suite.Equal(int64(0), suite.count(&auditrepo.RunOrderDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.OrderRepository().MarkHold(ctx, []string{"gid-unknown"}))
	suite.Require().NoError(uow.AuditRepository().AddBatches(ctx, []ports.AuditBatchRow{batchRow("run-1", 2)}))

	suite.Equal(int64(1), suite.count(&auditrepo.RunBatchDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditSink_AppendRun_WritesBothTables() {
	ctx := context.Background()
	sink := postgres_adapter.NewAuditSink(suite.factory)

	err := sink.AppendRun(ctx,
		[]ports.AuditOrderRow{orderRow("run-1", "#1"), orderRow("run-1", "#2")},
		[]ports.AuditBatchRow{batchRow("run-1", 2)},
	)

	suite.Require().NoError(err)
	suite.Equal(int64(2), suite.count(&auditrepo.RunOrderDTO{}))

	var batch auditrepo.RunBatchDTO
	suite.Require().NoError(suite.db.First(&batch, "run_id = ?", "run-1").Error)
	suite.Require().NotNil(batch.Batch)
	suite.Equal(6, *batch.Batch)
	suite.Equal(2, batch.Orders)
	suite.Equal("sameday", batch.DeliveryType)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditSink_AppendRun_FailureLeavesNothing() {
	ctx := context.Background()
	sink := postgres_adapter.NewAuditSink(suite.factory)
	suite.Require().NoError(suite.db.Migrator().DropTable(&auditrepo.RunBatchDTO{}))

	err := sink.AppendRun(ctx,
		[]ports.AuditOrderRow{orderRow("run-2", "#1")},
		[]ports.AuditBatchRow{batchRow("run-2", 1)},
	)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "append audit batches")
	suite.Equal(int64(0), suite.count(&auditrepo.RunOrderDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) count(model any) int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(model).Count(&n).Error)
	return n
}

func orderRow(runID, orderNumber string) ports.AuditOrderRow {
	batch := 6
	return ports.AuditOrderRow{
		RunID:           runID,
		OrderID:         "gid-" + orderNumber,
		OrderNumber:     orderNumber,
		StoreTag:        "flowers-au",
		Location:        "Sydney",
		DeliveryDate:    kernel.NewDeliveryDate(2024, time.May, 14),
		DeliveryType:    kernel.SameDay,
		Batch:           &batch,
		LogisticsStatus: "BOOKED",
		ScheduledPickup: "10:00",
		Reconciliation:  "Processed",
	}
}

func batchRow(runID string, orders int) ports.AuditBatchRow {
	batch := 6
	return ports.AuditBatchRow{
		RunID:        runID,
		StoreTag:     "flowers-au",
		Location:     "Sydney",
		DeliveryDate: kernel.NewDeliveryDate(2024, time.May, 14),
		DeliveryType: kernel.SameDay,
		Batch:        &batch,
		Orders:       orders,
		Booked:       orders,
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
