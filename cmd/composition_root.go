package cmd

import (
	"context"
	"fmt"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/local"
	"lastmile/internal/adapters/out/postgres"
	redisadapter "lastmile/internal/adapters/out/redis"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB
	logger  logrus.FieldLogger

	redis         *redis.Client
	locker        ports.Locker
	publisher     ports.EventPublisher
	trackingCache queries.TrackingCache
	uowFactory    *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the adapters. With REDIS_ADDR set, locks and
// events go through Redis and tracking lookups are cached there; otherwise
// both stay in the process.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger logrus.FieldLogger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
	}

	if configs.RedisAddr != "" {
		client, err := redisadapter.NewClient(ctx, redisadapter.Config{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.redis = client
		c.locker = redisadapter.NewLocker(client, configs.LockTTL, configs.LockTimeout, logger)
		c.publisher = redisadapter.NewPublisher(client, configs.RedisEventsChannel)
		c.trackingCache = redisadapter.NewTrackingCache(client, configs.TrackingCacheTTL)
	} else {
		c.locker = local.NewKeyedLocker(configs.LockTimeout)
		c.publisher = local.NewLogPublisher(logger)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher, logger)
	return c, nil
}

func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) parcelLedgerUoWFactory() commands.ParcelLedgerUoWFactory {
	return FuncParcelLedgerUoWFactory(func() commands.ParcelLedgerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) pickupUoWFactory() commands.PickupUoWFactory {
	return FuncPickupUoWFactory(func() commands.PickupUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.dispatchUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateReconcileShopCommandHandler() commands.ReconcileShopCommandHandler {
	return commands.NewReconcileShopCommandHandler(c.ledgerUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateResetDriverDailyCountersCommandHandler() commands.ResetDriverDailyCountersCommandHandler {
	return commands.NewResetDriverDailyCountersCommandHandler(c.driverUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

// HTTPHandlers returns every use case the REST API exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	parcelLedger := c.parcelLedgerUoWFactory()
	ledger := c.ledgerUoWFactory()
	drivers := c.driverUoWFactory()
	pickups := c.pickupUoWFactory()
	assign := c.CreateAssignDriverCommandHandler()

	return httpin.Handlers{
		RegisterShop:         commands.NewRegisterShopCommandHandler(ledger),
		SettleShop:           commands.NewSettleShopCommandHandler(ledger, c.locker),
		AdjustTotalCollected: commands.NewAdjustTotalCollectedCommandHandler(ledger, c.locker),
		ReconcileShop:        c.CreateReconcileShopCommandHandler(),

		RegisterDriver:        commands.NewRegisterDriverCommandHandler(drivers),
		ApproveDriver:         commands.NewApproveDriverCommandHandler(drivers, c.locker),
		SetDriverAvailability: commands.NewSetDriverAvailabilityCommandHandler(drivers, c.locker),

		CreateParcel:          commands.NewCreateParcelCommandHandler(parcelLedger, c.locker),
		AdvanceParcel:         commands.NewAdvanceParcelCommandHandler(parcelLedger, c.locker),
		RejectParcel:          commands.NewRejectParcelCommandHandler(parcelLedger, c.locker),
		MarkParcelReturned:    commands.NewMarkParcelReturnedCommandHandler(parcelLedger, c.locker),
		RecordPartialDelivery: commands.NewRecordPartialDeliveryCommandHandler(parcelLedger, c.locker),
		CancelParcel:          commands.NewCancelParcelCommandHandler(parcelLedger, c.locker),
		AddParcelNote:         commands.NewAddParcelNoteCommandHandler(c.parcelUoWFactory(), c.locker),
		AssignDriver:          assign,
		BulkAssignDriver:      commands.NewBulkAssignDriverCommandHandler(assign, c.configs.BulkAssignConcurrency),

		CreatePickup:         commands.NewCreatePickupCommandHandler(pickups, c.locker),
		AssignDriverToPickup: commands.NewAssignDriverToPickupCommandHandler(c.dispatchUoWFactory(), c.locker),
		MarkPickupCollected:  commands.NewMarkPickupCollectedCommandHandler(pickups, c.locker),
		MarkPickupInStorage:  commands.NewMarkPickupInStorageCommandHandler(pickups, c.locker),
		DeletePickup:         commands.NewDeletePickupCommandHandler(pickups, c.locker),

		GetParcel:             c.CreateGetParcelQueryHandler(),
		GetParcelByTracking:   queries.NewGetParcelByTrackingQueryHandler(c.gormDB, c.trackingCache, c.logger),
		GetShopBalance:        queries.NewGetShopBalanceQueryHandler(c.gormDB),
		ListMoneyTransactions: queries.NewListMoneyTransactionsQueryHandler(c.gormDB),
		GetDriverWorkload:     queries.NewGetDriverWorkloadQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewLedgerReconciliationJob(
			c.ledgerUoWFactory(),
			c.CreateReconcileShopCommandHandler(),
			c.configs.ReconcileSchedule,
			c.logger,
		),
		jobs.NewDriverCounterResetJob(
			c.CreateResetDriverDailyCountersCommandHandler(),
			c.configs.DriverCounterResetSchedule,
			c.logger,
		),
	)
}

type FuncParcelLedgerUoWFactory func() commands.ParcelLedgerUoW

func (f FuncParcelLedgerUoWFactory) Create() commands.ParcelLedgerUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}
