package counterrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterRepository implements CounterDocumentStore using GORM.
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GORM counter repository.
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Get retrieves the document stored under key.
func (r *GormCounterRepository) Get(ctx context.Context, key string) (ports.CounterDocument, bool, error) {
	var dto CounterDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CounterDocument{}, false, nil
		}
		return ports.CounterDocument{}, false, err
	}

	doc, err := toDomain(dto)
	if err != nil {
		return ports.CounterDocument{}, false, err
	}
	return doc, true, nil
}

// CreateIfAbsent inserts doc unless a row for key exists. When another writer won the
// insert the stored document is read back and returned.
func (r *GormCounterRepository) CreateIfAbsent(
	ctx context.Context,
	key string,
	doc ports.CounterDocument,
) (ports.CounterDocument, error) {
	dto, err := fromDomain(key, doc)
	if err != nil {
		return ports.CounterDocument{}, err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return ports.CounterDocument{}, result.Error
	}
	if result.RowsAffected == 1 {
		return doc, nil
	}

	stored, found, err := r.Get(ctx, key)
	if err != nil {
		return ports.CounterDocument{}, err
	}
	if !found {
		return ports.CounterDocument{}, gorm.ErrRecordNotFound
	}
	return stored, nil
}

// Put overwrites the document stored under key.
func (r *GormCounterRepository) Put(ctx context.Context, key string, doc ports.CounterDocument) error {
	dto, err := fromDomain(key, doc)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&dto).Error
}
