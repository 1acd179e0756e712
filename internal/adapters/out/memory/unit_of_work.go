package memory

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"

	"github.com/sirupsen/logrus"
)

var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory hands out units of work over one shared Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    logrus.FieldLogger
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger logrus.FieldLogger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.WithField("component", "memory_unit_of_work"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	uow := &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
	uow.reset()
	return uow
}

// UnitOfWork buffers writes until Commit. Outside Begin/Commit every write is
// committed on its own.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    logrus.FieldLogger

	active  bool
	parcels changes[*parcel.Parcel]
	shops   changes[*shop.Shop]
	drivers changes[*driver.Driver]
	pickups changes[*pickup.Pickup]
	ledger  []*shop.MoneyTransaction
	tracked []kernel.Aggregate
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.active = false
	return uow.flush(ctx)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.active = false
	uow.reset()
	return nil
}

func (uow *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &parcelRepository{uow: uow}
}

func (uow *UnitOfWork) ShopRepository() ports.ShopRepository {
	return &shopRepository{uow: uow}
}

func (uow *UnitOfWork) MoneyTransactionRepository() ports.MoneyTransactionRepository {
	return &moneyTransactionRepository{uow: uow}
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &driverRepository{uow: uow}
}

func (uow *UnitOfWork) PickupRepository() ports.PickupRepository {
	return &pickupRepository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.parcels = newChanges[*parcel.Parcel]()
	uow.shops = newChanges[*shop.Shop]()
	uow.drivers = newChanges[*driver.Driver]()
	uow.pickups = newChanges[*pickup.Pickup]()
	uow.ledger = nil
	uow.tracked = nil
}

// write runs fn against the staged state while holding the store read lock
// and commits right away when no transaction is active.
func (uow *UnitOfWork) write(ctx context.Context, aggregate kernel.Aggregate, fn func() error) error {
	uow.store.mu.RLock()
	err := fn()
	uow.store.mu.RUnlock()
	if err != nil {
		if !uow.active {
			uow.reset()
		}
		return err
	}
	if aggregate != nil {
		uow.tracked = append(uow.tracked, aggregate)
	}
	if !uow.active {
		return uow.flush(ctx)
	}
	return nil
}

func (uow *UnitOfWork) read(fn func() error) error {
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	return fn()
}

// flush validates the staged writes against the committed state, applies
// them in one step and publishes the events of the written aggregates.
func (uow *UnitOfWork) flush(ctx context.Context) error {
	s := uow.store
	s.mu.Lock()
	err := errors.Join(
		uow.parcels.check(&s.parcels),
		uow.shops.check(&s.shops),
		uow.drivers.check(&s.drivers),
		uow.pickups.check(&s.pickups),
	)
	if err == nil {
		uow.parcels.apply(&s.parcels)
		uow.shops.apply(&s.shops)
		uow.drivers.apply(&s.drivers)
		uow.pickups.apply(&s.pickups)
		s.ledger = append(s.ledger, uow.ledger...)
	}
	s.mu.Unlock()

	tracked := uow.tracked
	uow.reset()
	if err != nil {
		return err
	}

	var events []kernel.DomainEvent
	for _, a := range tracked {
		events = append(events, a.PullEvents()...)
	}
	if len(events) == 0 || uow.publisher == nil {
		return nil
	}
	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.WithError(err).WithField("events", len(events)).Warn("failed to publish domain events")
	}
	return nil
}
