package ports

import "context"

// CounterDocument is the stored value of one batch counter key.
type CounterDocument struct {
	Batch    int               `json:"batch"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CounterDocumentStore is the document key-value store batch counters live in.
// Keys have the form location_YYYY-MM-DD_deliveryType.
type CounterDocumentStore interface {
	// Get returns the document for key. found is false when the key does not exist.
	Get(ctx context.Context, key string) (doc CounterDocument, found bool, err error)

	// CreateIfAbsent stores doc under key unless the key already exists, and returns
	// the document that is stored after the call.
	CreateIfAbsent(ctx context.Context, key string, doc CounterDocument) (CounterDocument, error)

	// Put overwrites the document stored under key.
	Put(ctx context.Context, key string, doc CounterDocument) error
}
