package batching

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// CounterService implements the two counter operations over a document store.
// Every store call runs under its own timeout.
type CounterService struct {
	store       ports.CounterDocumentStore
	callTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewCounterService(
	store ports.CounterDocumentStore,
	callTimeout time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *CounterService {
	if now == nil {
		now = time.Now
	}
	return &CounterService{
		store:       store,
		callTimeout: callTimeout,
		now:         now,
		logger:      logger.With("component", "batch_counters"),
	}
}

// GetCounters reads the counter of every distinct location, creating absent keys at 0.
// A failed read or create yields nil for that location.
func (s *CounterService) GetCounters(
	ctx context.Context,
	locations []string,
	date kernel.DeliveryDate,
	deliveryType kernel.DeliveryType,
) Counters {
	counters := make(Counters, len(locations))

	for _, loc := range locations {
		if _, seen := counters[loc]; seen {
			continue
		}
		counters[loc] = s.read(ctx, loc, date, deliveryType)
	}
	return counters
}

func (s *CounterService) read(
	ctx context.Context,
	location string,
	date kernel.DeliveryDate,
	deliveryType kernel.DeliveryType,
) *int {
	key := Key(location, date, deliveryType)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	doc, found, err := s.store.Get(callCtx, key)
	cancel()
	if err != nil {
		s.logger.WarnContext(ctx, "Counter read failed", "key", key, "error", err)
		return nil
	}
	if found {
		return intPtr(doc.Batch)
	}

	callCtx, cancel = context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	created, err := s.store.CreateIfAbsent(callCtx, key, s.document(0, location, date, deliveryType))
	if err != nil {
		s.logger.WarnContext(ctx, "Counter create failed", "key", key, "error", err)
		return nil
	}

	s.logger.InfoContext(ctx, "Counter created", "key", key, "batch", created.Batch)
	return intPtr(created.Batch)
}

// IncrementCounters writes prior+1 for every location whose success count is positive
// and whose prior value is known. Locations with zero successes keep their prior value.
// A failed write yields nil. At most one write is made per location.
func (s *CounterService) IncrementCounters(
	ctx context.Context,
	successCounts map[string]int,
	date kernel.DeliveryDate,
	deliveryType kernel.DeliveryType,
	prior Counters,
) Counters {
	next := make(Counters, len(prior))

	for _, loc := range prior.Locations() {
		value, known := prior.Value(loc)
		if !known {
			next[loc] = nil
			continue
		}
		if successCounts[loc] <= 0 {
			next[loc] = intPtr(value)
			continue
		}

		key := Key(loc, date, deliveryType)
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		err := s.store.Put(callCtx, key, s.document(value+1, loc, date, deliveryType))
		cancel()
		if err != nil {
			s.logger.WarnContext(ctx, "Counter write failed", "key", key, "error", err)
			next[loc] = nil
			continue
		}

		s.logger.InfoContext(ctx, "Counter incremented", "key", key, "batch", value+1, "booked", successCounts[loc])
		next[loc] = intPtr(value + 1)
	}
	return next
}

func (s *CounterService) document(
	batch int,
	location string,
	date kernel.DeliveryDate,
	deliveryType kernel.DeliveryType,
) ports.CounterDocument {
	return ports.CounterDocument{
		Batch: batch,
		Metadata: map[string]string{
			"location":      location,
			"date":          date.String(),
			"delivery_type": deliveryType.String(),
			"batch":         strconv.Itoa(batch),
			"updated_at":    s.now().UTC().Format(time.RFC3339),
		},
	}
}
