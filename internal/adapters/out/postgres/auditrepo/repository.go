package auditrepo

import (
	"context"

	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// insertBatchSize bounds the rows of one INSERT statement.
const insertBatchSize = 200

// GormAuditRepository writes audit rows using GORM. It does not open transactions of
// its own; callers that need both tables written atomically pass a transaction handle.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// AddOrders appends order rows.
func (r *GormAuditRepository) AddOrders(ctx context.Context, rows []ports.AuditOrderRow) error {
	if len(rows) == 0 {
		return nil
	}
	dtos := make([]RunOrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, fromOrderRow(row))
	}
	return r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error
}

// AddBatches appends batch summary rows.
func (r *GormAuditRepository) AddBatches(ctx context.Context, rows []ports.AuditBatchRow) error {
	if len(rows) == 0 {
		return nil
	}
	dtos := make([]RunBatchDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, fromBatchRow(row))
	}
	return r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error
}
