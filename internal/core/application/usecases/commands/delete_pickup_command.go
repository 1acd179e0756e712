package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrDeletePickupCommandIsNotConstructed = errors.New(
	"DeletePickupCommand must be created via NewDeletePickupCommand constructor",
)

// DeletePickupCommand removes a scheduled pickup and sends its parcels back
// to awaiting a schedule.
type DeletePickupCommand struct {
	pickupID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeletePickupCommand(pickupID kernel.UUID) (DeletePickupCommand, error) {
	if err := pickupID.Validate(); err != nil {
		return DeletePickupCommand{}, err
	}
	return DeletePickupCommand{
		pickupID: pickupID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeletePickupCommand) Validate() error {
	return c.guard.Validate(ErrDeletePickupCommandIsNotConstructed)
}

func (c DeletePickupCommand) PickupID() kernel.UUID { return c.pickupID }
