package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pickup"
)

// PickupRepository persists pickups. The parcel set of a pickup is owned by
// the parcels themselves (their pickup reference), so Get fills
// Pickup.ParcelIDs from the parcels table.
type PickupRepository interface {
	Add(ctx context.Context, aggregate *pickup.Pickup) error
	Update(ctx context.Context, aggregate *pickup.Pickup) error
	Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error)

	// Delete removes the pickup row. Callers detach its parcels first.
	Delete(ctx context.Context, id kernel.UUID) error
}
