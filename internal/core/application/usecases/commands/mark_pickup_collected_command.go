package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrMarkPickupCollectedCommandIsNotConstructed = errors.New(
	"MarkPickupCollectedCommand must be created via NewMarkPickupCollectedCommand constructor",
)

// MarkPickupCollectedCommand reports that the driver collected a pickup.
type MarkPickupCollectedCommand struct {
	pickupID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkPickupCollectedCommand(pickupID kernel.UUID) (MarkPickupCollectedCommand, error) {
	if err := pickupID.Validate(); err != nil {
		return MarkPickupCollectedCommand{}, err
	}
	return MarkPickupCollectedCommand{
		pickupID: pickupID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MarkPickupCollectedCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickupCollectedCommandIsNotConstructed)
}

func (c MarkPickupCollectedCommand) PickupID() kernel.UUID { return c.pickupID }
