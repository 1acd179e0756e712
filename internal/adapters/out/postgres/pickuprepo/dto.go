// Package pickuprepo persists pickups. The parcel set of a pickup lives on
// the parcels table (parcels.pickup_id) and is read back from there.
package pickuprepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

type PickupDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShopID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	ScheduledTime    time.Time  `gorm:"not null"`
	Address          string     `gorm:"type:text;not null"`
	Status           int        `gorm:"type:smallint;not null"`
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	ActualPickupTime *time.Time
	Version          int64 `gorm:"not null"`
}

func (PickupDTO) TableName() string {
	return "pickups"
}

func fromDomain(p *pickup.Pickup) PickupDTO {
	var driverID *uuid.UUID
	if id := p.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}
	return PickupDTO{
		ID:               p.ID().Bytes(),
		ShopID:           p.ShopID().Bytes(),
		ScheduledTime:    p.ScheduledTime(),
		Address:          p.Address(),
		Status:           int(p.Status()),
		DriverID:         driverID,
		ActualPickupTime: p.ActualPickupTime(),
		Version:          p.Version(),
	}
}

func toDomain(dto PickupDTO, rawParcelIDs []uuid.UUID) (*pickup.Pickup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	parcelIDs := make([]kernel.UUID, 0, len(rawParcelIDs))
	for _, raw := range rawParcelIDs {
		pID, parcelErr := kernel.UUIDFromBytes(raw[:])
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelIDs = append(parcelIDs, pID)
	}

	return pickup.RestorePickup(
		id,
		shopID,
		dto.ScheduledTime,
		dto.Address,
		pickup.Status(dto.Status),
		driverID,
		parcelIDs,
		dto.ActualPickupTime,
		dto.Version,
	)
}
