package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// Locker serializes operations on the same aggregates.
//
// Lock acquires every key in the order given and returns a function that
// releases them all. It waits until ctx is done; a lock that could not be
// acquired in time fails with errs.ErrConcurrentModification and nothing
// stays held. Callers pass keys in the global order pickup, parcels (sorted
// by id), driver, shop.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

func ParcelLockKey(id kernel.UUID) string { return "parcel:" + id.String() }
func ShopLockKey(id kernel.UUID) string   { return "shop:" + id.String() }
func DriverLockKey(id kernel.UUID) string { return "driver:" + id.String() }
func PickupLockKey(id kernel.UUID) string { return "pickup:" + id.String() }
