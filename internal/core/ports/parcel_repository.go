package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel. A duplicate id or tracking number fails
	// with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the parcel if its stored version still equals
	// aggregate.Version() and bumps the version. A stale version fails with
	// errs.ErrConcurrentModification.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns errs.ErrObjectNotFound for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	GetByTracking(ctx context.Context, trackingNumber string) (*parcel.Parcel, error)

	// ListByPickup returns the parcels attached to a pickup, ordered by id.
	ListByPickup(ctx context.Context, pickupID kernel.UUID) ([]*parcel.Parcel, error)

	// CountActiveByDriver counts the parcels bound to driverID whose status
	// is in parcel.ActiveStatuses().
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error)
}
