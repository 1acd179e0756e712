package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrMarkPickupInStorageCommandIsNotConstructed = errors.New(
	"MarkPickupInStorageCommand must be created via NewMarkPickupInStorageCommand constructor",
)

// MarkPickupInStorageCommand records that a collected pickup reached the
// warehouse.
type MarkPickupInStorageCommand struct {
	pickupID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkPickupInStorageCommand(pickupID kernel.UUID) (MarkPickupInStorageCommand, error) {
	if err := pickupID.Validate(); err != nil {
		return MarkPickupInStorageCommand{}, err
	}
	return MarkPickupInStorageCommand{
		pickupID: pickupID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MarkPickupInStorageCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickupInStorageCommandIsNotConstructed)
}

func (c MarkPickupInStorageCommand) PickupID() kernel.UUID { return c.pickupID }
