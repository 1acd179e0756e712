package memory

import (
	"context"
	"slices"
	"strings"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"
)

func byID[T versioned](a, b T) int {
	return strings.Compare(a.ID().String(), b.ID().String())
}

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		all, err := r.uow.parcels.visible(&r.uow.store.parcels)
		if err != nil {
			return err
		}
		for _, p := range all {
			if p.TrackingNumber() == aggregate.TrackingNumber() {
				return errs.NewObjectAlreadyExistsError("parcel", aggregate.TrackingNumber())
			}
		}
		return r.uow.parcels.add(&r.uow.store.parcels, aggregate)
	})
}

func (r *parcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.parcels.update(&r.uow.store.parcels, aggregate)
	})
}

func (r *parcelRepository) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	var found *parcel.Parcel
	err := r.uow.read(func() error {
		p, ok, err := r.uow.parcels.lookup(&r.uow.store.parcels, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewObjectNotFoundError("parcel", id.String())
		}
		found = p
		return nil
	})
	return found, err
}

func (r *parcelRepository) GetByTracking(_ context.Context, trackingNumber string) (*parcel.Parcel, error) {
	var found *parcel.Parcel
	err := r.uow.read(func() error {
		all, err := r.uow.parcels.visible(&r.uow.store.parcels)
		if err != nil {
			return err
		}
		for _, p := range all {
			if p.TrackingNumber() == trackingNumber {
				found = p
				return nil
			}
		}
		return errs.NewObjectNotFoundError("parcel", trackingNumber)
	})
	return found, err
}

func (r *parcelRepository) ListByPickup(_ context.Context, pickupID kernel.UUID) ([]*parcel.Parcel, error) {
	var out []*parcel.Parcel
	err := r.uow.read(func() error {
		all, err := r.uow.parcels.visible(&r.uow.store.parcels)
		if err != nil {
			return err
		}
		for _, p := range all {
			if ref := p.Pickup(); ref != nil && *ref == pickupID {
				out = append(out, p)
			}
		}
		return nil
	})
	slices.SortFunc(out, byID[*parcel.Parcel])
	return out, err
}

func (r *parcelRepository) CountActiveByDriver(_ context.Context, driverID kernel.UUID) (int, error) {
	count := 0
	err := r.uow.read(func() error {
		all, err := r.uow.parcels.visible(&r.uow.store.parcels)
		if err != nil {
			return err
		}
		for _, p := range all {
			if ref := p.Driver(); ref != nil && *ref == driverID && p.Status().IsActive() {
				count++
			}
		}
		return nil
	})
	return count, err
}

type shopRepository struct {
	uow *UnitOfWork
}

func (r *shopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.shops.add(&r.uow.store.shops, aggregate)
	})
}

func (r *shopRepository) Update(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.shops.update(&r.uow.store.shops, aggregate)
	})
}

func (r *shopRepository) Get(_ context.Context, id kernel.UUID) (*shop.Shop, error) {
	var found *shop.Shop
	err := r.uow.read(func() error {
		s, ok, err := r.uow.shops.lookup(&r.uow.store.shops, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewObjectNotFoundError("shop", id.String())
		}
		found = s
		return nil
	})
	return found, err
}

func (r *shopRepository) List(_ context.Context) ([]*shop.Shop, error) {
	var out []*shop.Shop
	err := r.uow.read(func() error {
		all, err := r.uow.shops.visible(&r.uow.store.shops)
		out = all
		return err
	})
	slices.SortFunc(out, func(a, b *shop.Shop) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return byID(a, b)
	})
	return out, err
}

type moneyTransactionRepository struct {
	uow *UnitOfWork
}

func (r *moneyTransactionRepository) Add(ctx context.Context, rows ...*shop.MoneyTransaction) error {
	if len(rows) == 0 {
		return nil
	}
	return r.uow.write(ctx, nil, func() error {
		r.uow.ledger = append(r.uow.ledger, rows...)
		return nil
	})
}

func (r *moneyTransactionRepository) ListByShop(_ context.Context, shopID kernel.UUID) ([]*shop.MoneyTransaction, error) {
	var out []*shop.MoneyTransaction
	_ = r.uow.read(func() error {
		for _, row := range append(slices.Clone(r.uow.store.ledger), r.uow.ledger...) {
			if row.ShopID() == shopID {
				out = append(out, row)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *shop.MoneyTransaction) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return out, nil
}

type driverRepository struct {
	uow *UnitOfWork
}

func (r *driverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.drivers.add(&r.uow.store.drivers, aggregate)
	})
}

func (r *driverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.drivers.update(&r.uow.store.drivers, aggregate)
	})
}

func (r *driverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	var found *driver.Driver
	err := r.uow.read(func() error {
		d, ok, err := r.uow.drivers.lookup(&r.uow.store.drivers, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewObjectNotFoundError("driver", id.String())
		}
		found = d
		return nil
	})
	return found, err
}

func (r *driverRepository) List(_ context.Context) ([]*driver.Driver, error) {
	var out []*driver.Driver
	err := r.uow.read(func() error {
		all, err := r.uow.drivers.visible(&r.uow.store.drivers)
		out = all
		return err
	})
	slices.SortFunc(out, func(a, b *driver.Driver) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return byID(a, b)
	})
	return out, err
}

type pickupRepository struct {
	uow *UnitOfWork
}

func (r *pickupRepository) Add(ctx context.Context, aggregate *pickup.Pickup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.pickups.add(&r.uow.store.pickups, aggregate)
	})
}

func (r *pickupRepository) Update(ctx context.Context, aggregate *pickup.Pickup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, aggregate, func() error {
		return r.uow.pickups.update(&r.uow.store.pickups, aggregate)
	})
}

// Get fills the parcel set from the parcels' pickup references, like the
// PostgreSQL adapter.
func (r *pickupRepository) Get(_ context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	var found *pickup.Pickup
	err := r.uow.read(func() error {
		p, ok, err := r.uow.pickups.lookup(&r.uow.store.pickups, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewObjectNotFoundError("pickup", id.String())
		}

		parcels, err := r.uow.parcels.visible(&r.uow.store.parcels)
		if err != nil {
			return err
		}
		var ids []kernel.UUID
		for _, pc := range parcels {
			if ref := pc.Pickup(); ref != nil && *ref == id {
				ids = append(ids, pc.ID())
			}
		}
		slices.SortFunc(ids, func(a, b kernel.UUID) int { return strings.Compare(a.String(), b.String()) })

		found, err = pickup.RestorePickup(
			p.ID(), p.ShopID(), p.ScheduledTime(), p.Address(), p.Status(),
			p.Driver(), ids, p.ActualPickupTime(), p.Version(),
		)
		return err
	})
	return found, err
}

func (r *pickupRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return r.uow.write(ctx, nil, func() error {
		return r.uow.pickups.remove(&r.uow.store.pickups, id)
	})
}
