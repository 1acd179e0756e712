package commands

import (
	"errors"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreatePickupCommandIsNotConstructed = errors.New(
	"CreatePickupCommand must be created via NewCreatePickupCommand constructor",
)

// CreatePickupCommand schedules the collection of a shop's parcels. Every
// parcel must belong to the shop, wait for a schedule and not be attached to
// another pickup.
//
// Example:
//
//	cmd, err := NewCreatePickupCommand(kernel.NewUUID(), shopID,
//	    time.Now().Add(2*time.Hour), "12 Harbour Road", []kernel.UUID{p1, p2})
type CreatePickupCommand struct {
	pickupID      kernel.UUID
	shopID        kernel.UUID
	scheduledTime time.Time
	address       string
	parcelIDs     []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreatePickupCommand(
	pickupID, shopID kernel.UUID,
	scheduledTime time.Time,
	address string,
	parcelIDs []kernel.UUID,
) (CreatePickupCommand, error) {
	if err := errors.Join(pickupID.Validate(), shopID.Validate()); err != nil {
		return CreatePickupCommand{}, err
	}
	if scheduledTime.IsZero() {
		return CreatePickupCommand{}, errs.NewValueIsRequiredError("scheduled time")
	}
	if strings.TrimSpace(address) == "" {
		return CreatePickupCommand{}, errs.NewValueIsRequiredError("address")
	}
	if len(parcelIDs) == 0 {
		return CreatePickupCommand{}, errs.NewValueIsRequiredError("parcel ids")
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return CreatePickupCommand{}, err
		}
	}

	return CreatePickupCommand{
		pickupID:      pickupID,
		shopID:        shopID,
		scheduledTime: scheduledTime,
		address:       address,
		parcelIDs:     append([]kernel.UUID(nil), parcelIDs...),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePickupCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupCommandIsNotConstructed)
}

func (c CreatePickupCommand) PickupID() kernel.UUID    { return c.pickupID }
func (c CreatePickupCommand) ShopID() kernel.UUID      { return c.shopID }
func (c CreatePickupCommand) ScheduledTime() time.Time { return c.scheduledTime }
func (c CreatePickupCommand) Address() string          { return c.address }

func (c CreatePickupCommand) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}
