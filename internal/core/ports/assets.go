package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// AssetFolder addresses the production folder of one batch.
type AssetFolder struct {
	Location     string
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	Batch        int
}

// AssetStore is folder-structured object storage for production material.
type AssetStore interface {
	// EnsureFolder creates the folder if needed and returns its address.
	EnsureFolder(ctx context.Context, folder AssetFolder) (string, error)

	// Put writes one object into the folder.
	Put(ctx context.Context, folder AssetFolder, name string, data []byte) error
}
