package postgres

import (
	"context"
	"fmt"

	"fulfillment/internal/core/ports"
)

// AuditSink writes the order rows and the batch summary of one run in a single
// transaction, so a run is either fully audited or not at all.
type AuditSink struct {
	factory *GormUnitOfWorkFactory
}

func NewAuditSink(factory *GormUnitOfWorkFactory) *AuditSink {
	return &AuditSink{factory: factory}
}

func (s *AuditSink) AppendRun(ctx context.Context, orders []ports.AuditOrderRow, batches []ports.AuditBatchRow) error {
	uow := s.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin audit transaction: %w", err)
	}

	if err := uow.AuditRepository().AddOrders(ctx, orders); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("append audit orders: %w", err)
	}
	if err := uow.AuditRepository().AddBatches(ctx, batches); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("append audit batches: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit audit transaction: %w", err)
	}
	return nil
}
