package services

import (
	"time"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/pickup"
)

// DriverDispatcher is a domain service that binds drivers to parcels and
// pickups.
//
// Business rules:
//   - the driver must be approved and available (ErrDriverUnavailable)
//   - the parcel must be pending, assigned, pickedup, in-transit or
//     exchange-in-transit (ErrPackageNotAssignable); the status is unchanged
//   - a parcel has at most one driver; assigning another one replaces it
//   - the pickup must still be scheduled (ErrPreconditionNotMet)
//
// The driver's assignment counters grow only when the parcel actually changes
// hands, so repeating an assignment is harmless. Callers hold the driver lock
// while the counters change.
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Assign binds d to p. It reports whether the parcel changed hands.
func (DriverDispatcher) Assign(p *parcel.Parcel, d *driver.Driver, now time.Time) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := d.Validate(); err != nil {
		return false, err
	}
	if err := d.EnsureDispatchable(); err != nil {
		return false, err
	}

	alreadyBound := p.HasDriver(d.ID())
	if err := p.BindDriver(d.ID(), now); err != nil {
		return false, err
	}
	if alreadyBound {
		return false, nil
	}

	d.RecordAssignment()
	return true, nil
}

// AssignToPickup binds d to a scheduled pickup.
func (DriverDispatcher) AssignToPickup(pk *pickup.Pickup, d *driver.Driver) error {
	if err := pk.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if err := d.EnsureDispatchable(); err != nil {
		return err
	}
	return pk.AssignDriver(d.ID())
}
