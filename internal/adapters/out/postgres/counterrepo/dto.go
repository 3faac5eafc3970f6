// Package counterrepo stores batch counter documents in PostgreSQL, one row per key.
package counterrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"gorm.io/datatypes"
)

// CounterDTO is one batch counter document.
type CounterDTO struct {
	Key       string `gorm:"primaryKey"`
	Batch     int    `gorm:"not null"`
	Metadata  datatypes.JSON
	UpdatedAt time.Time
}

// TableName specifies the database table name for counter documents.
func (CounterDTO) TableName() string {
	return "batch_counters"
}

func fromDomain(key string, doc ports.CounterDocument) (CounterDTO, error) {
	dto := CounterDTO{Key: key, Batch: doc.Batch}
	if len(doc.Metadata) > 0 {
		raw, err := json.Marshal(doc.Metadata)
		if err != nil {
			return CounterDTO{}, err
		}
		dto.Metadata = datatypes.JSON(raw)
	}
	return dto, nil
}

func toDomain(dto CounterDTO) (ports.CounterDocument, error) {
	doc := ports.CounterDocument{Batch: dto.Batch}
	if len(dto.Metadata) > 0 {
		if err := json.Unmarshal(dto.Metadata, &doc.Metadata); err != nil {
			return ports.CounterDocument{}, err
		}
	}
	return doc, nil
}
