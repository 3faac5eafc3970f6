package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/assets"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/counterrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/redis/counterstore"
	"fulfillment/internal/adapters/out/renderer"
	"fulfillment/internal/core/application/batching"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cutoff"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultLabelWait = 500 * time.Millisecond

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	rdb        *redis.Client
	uowFactory *postgres.GormUnitOfWorkFactory
	counters   ports.CounterDocumentStore
	carriers   map[kernel.DeliveryType]ports.Carrier
	home       kernel.Location
	logger     *slog.Logger
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	home, err := kernel.LocationByName(cfg.HomeLocation)
	if err != nil {
		return nil, fmt.Errorf("home location: %w", err)
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		home:       home,
		logger:     logger,
	}

	switch cfg.CounterBackend {
	case CounterBackendRedis:
		c.rdb, err = counterstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		c.counters = counterstore.New(c.rdb, counterstore.DefaultKeyPrefix)
	default:
		c.counters = counterrepo.NewGormCounterRepository(gormDB)
	}

	if c.carriers, err = c.buildCarriers(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases connections the root opened itself.
func (c *CompositionRoot) Close() {
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}

// buildCarriers creates a client for every lane whose endpoint is configured for the
// carrier mode. A lane without one books nothing and reports why.
func (c *CompositionRoot) buildCarriers() (map[kernel.DeliveryType]ports.Carrier, error) {
	opts := []carrier.Option{carrier.WithLabelRetry(c.cfg.LabelTries, defaultLabelWait)}
	lanes := []struct {
		deliveryType kernel.DeliveryType
		config       CarrierConfig
		shaper       carrier.Shaper
	}{
		{kernel.SameDay, c.cfg.SameDayCarrier, carrier.SameDayCourier{}},
		{kernel.NextDay, c.cfg.NextDayCarrier, carrier.NextDayParcel{ServiceLevel: c.cfg.NextDayServiceLevel}},
	}

	carriers := make(map[kernel.DeliveryType]ports.Carrier, len(lanes))
	for _, lane := range lanes {
		if lane.config.baseURL(c.cfg.CarrierMode) == "" {
			c.logger.Warn("Carrier not configured",
				"delivery_type", lane.deliveryType.String(),
				"carrier_mode", string(c.cfg.CarrierMode),
			)
			continue
		}
		client, err := carrier.NewClient(lane.config.Name, c.cfg.CarrierMode, lane.config.credentials(), lane.shaper, opts...)
		if err != nil {
			return nil, err
		}
		carriers[lane.deliveryType] = client
	}
	return carriers, nil
}

func (c *CompositionRoot) CreateRunPipelineCommandHandler() commands.RunPipelineCommandHandler {
	orders := orderrepo.NewGormOrderRepository(c.gormDB)
	notifier := notify.NewClient(c.cfg.EmailAPIURL, c.cfg.EmailAPIKey, c.cfg.EmailFrom, c.cfg.NotifyRecipients, nil)

	return commands.NewRunPipelineCommandHandler(commands.Dependencies{
		Orders:         orders,
		Carriers:       c.carriers,
		Scheduler:      services.NewPickupScheduler(cutoff.DefaultTable()),
		Counters:       batching.NewCounterService(c.counters, c.cfg.CallTimeout, nil, c.logger),
		Assets:         assets.NewOsStore(c.cfg.AssetRoot),
		Content:        renderer.NewClient(c.cfg.RendererURL, c.cfg.RendererKey, nil, c.logger),
		Reconciliation: orders,
		Notifier:       notifier,
		Audit:          postgres.NewAuditSink(c.uowFactory),
		Settings: commands.Settings{
			CallTimeout:             c.cfg.CallTimeout,
			BookingPacing:           c.cfg.BookingPacing,
			AutoRowLimitPerLocation: c.cfg.AutoRowLimit,
		},
		Logger: c.logger,
	})
}

func (c *CompositionRoot) CreateGetBatchCounterQueryHandler() queries.GetBatchCounterQueryHandler {
	return queries.NewGetBatchCounterQueryHandler(c.counters)
}

func (c *CompositionRoot) CreateGetRunBatchesQueryHandler() queries.GetRunBatchesQueryHandler {
	return queries.NewGetRunBatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateRunPipelineCommandHandler(),
		c.CreateGetBatchCounterQueryHandler(),
		c.CreateGetRunBatchesQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRunPipelineCommandHandler(), []jobs.Lane{
		{DeliveryType: kernel.SameDay, Spec: c.cfg.SameDayCron, StoreTag: c.cfg.AutoStoreTag},
		{DeliveryType: kernel.NextDay, Spec: c.cfg.NextDayCron, StoreTag: c.cfg.AutoStoreTag},
	}, c.home, c.logger)
}
