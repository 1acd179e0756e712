package pickup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrPickupIsNotConstructed = errors.New("Pickup must be created via NewPickup constructor")

const EventStatusChanged = "pickup.status_changed"

// Pickup is a scheduled visit to one shop that collects a batch of its
// parcels. The parcels themselves reference the pickup; the set held here is
// the one loaded with the aggregate.
type Pickup struct {
	id               kernel.UUID
	shopID           kernel.UUID
	scheduledTime    time.Time
	address          string
	status           Status
	driverID         *kernel.UUID
	parcelIDs        []kernel.UUID
	actualPickupTime *time.Time
	version          int64

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

// NewPickup schedules a pickup for parcelIDs. At least one parcel is required
// and ids must be distinct.
func NewPickup(
	id, shopID kernel.UUID,
	scheduledTime time.Time,
	address string,
	parcelIDs []kernel.UUID,
) (*Pickup, error) {
	p := &Pickup{
		status: Scheduled,
		guard:  guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		p.setID(id),
		p.setShopID(shopID),
		p.setScheduledTime(scheduledTime),
		p.setAddress(address),
		p.setParcelIDs(parcelIDs),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePickup rebuilds a pickup read back from storage. A restored pickup
// may have an empty parcel set once its parcels were cancelled.
func RestorePickup(
	id, shopID kernel.UUID,
	scheduledTime time.Time,
	address string,
	status Status,
	driverID *kernel.UUID,
	parcelIDs []kernel.UUID,
	actualPickupTime *time.Time,
	version int64,
) (*Pickup, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	p := &Pickup{
		status:           status,
		driverID:         driverID,
		actualPickupTime: actualPickupTime,
		parcelIDs:        append([]kernel.UUID(nil), parcelIDs...),
		version:          version,
		guard:            guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		p.setID(id),
		p.setShopID(shopID),
		p.setScheduledTime(scheduledTime),
		p.setAddress(address),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pickup) Validate() error {
	if p == nil {
		return ErrPickupIsNotConstructed
	}
	return p.guard.Validate(ErrPickupIsNotConstructed)
}

func (p *Pickup) ID() kernel.UUID              { return p.id }
func (p *Pickup) ShopID() kernel.UUID          { return p.shopID }
func (p *Pickup) ScheduledTime() time.Time     { return p.scheduledTime }
func (p *Pickup) Address() string              { return p.address }
func (p *Pickup) Status() Status               { return p.status }
func (p *Pickup) ParcelIDs() []kernel.UUID     { return append([]kernel.UUID(nil), p.parcelIDs...) }
func (p *Pickup) ActualPickupTime() *time.Time { return p.actualPickupTime }
func (p *Pickup) Version() int64               { return p.version }
func (p *Pickup) SetVersion(version int64)     { p.version = version }

func (p *Pickup) Driver() *kernel.UUID {
	if p.driverID == nil {
		return nil
	}
	id := *p.driverID
	return &id
}

// AssignDriver binds a driver to a scheduled pickup.
func (p *Pickup) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := p.ensureScheduled("assign a driver to"); err != nil {
		return err
	}
	id := driverID
	p.driverID = &id
	return nil
}

// MarkPickedUp records that the driver collected the parcels.
func (p *Pickup) MarkPickedUp(now time.Time) error {
	if err := p.ensureScheduled("pick up"); err != nil {
		return err
	}
	p.moveTo(PickedUp, now)
	if p.actualPickupTime == nil {
		p.actualPickupTime = &now
	}
	return nil
}

// MarkInStorage records that the collected parcels reached the warehouse.
func (p *Pickup) MarkInStorage(now time.Time) error {
	if p.status != PickedUp {
		return errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"pickup",
			fmt.Sprintf("can not store a %s pickup", p.status),
		)
	}
	p.moveTo(InStorage, now)
	return nil
}

// EnsureDeletable fails unless the pickup is still scheduled.
func (p *Pickup) EnsureDeletable() error {
	return p.ensureScheduled("delete")
}

func (p *Pickup) ensureScheduled(action string) error {
	if p.status != Scheduled {
		return errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"pickup",
			fmt.Sprintf("can not %s a %s pickup", action, p.status),
		)
	}
	return nil
}

func (p *Pickup) moveTo(next Status, now time.Time) {
	prev := p.status
	p.status = next
	p.Record(kernel.DomainEvent{
		Name:       EventStatusChanged,
		SubjectID:  p.id,
		Attribute:  "status",
		OldValue:   prev.String(),
		NewValue:   next.String(),
		OccurredAt: now,
	})
}

func (p *Pickup) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pickup) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shop id", err)
	}
	p.shopID = shopID
	return nil
}

func (p *Pickup) setScheduledTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("scheduled time")
	}
	p.scheduledTime = t
	return nil
}

func (p *Pickup) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	p.address = address
	return nil
}

func (p *Pickup) setParcelIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("parcel ids")
	}
	seen := make(map[kernel.UUID]bool, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if seen[id] {
			return errs.NewValueIsInvalidErrorWithCause("parcel ids", fmt.Errorf("%s is listed twice", id))
		}
		seen[id] = true
	}
	p.parcelIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
