package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignDriverToPickupCommandIsNotConstructed = errors.New(
	"AssignDriverToPickupCommand must be created via NewAssignDriverToPickupCommand constructor",
)

type AssignDriverToPickupCommand struct {
	pickupID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverToPickupCommand(pickupID, driverID kernel.UUID) (AssignDriverToPickupCommand, error) {
	if err := errors.Join(pickupID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverToPickupCommand{}, err
	}
	return AssignDriverToPickupCommand{
		pickupID: pickupID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverToPickupCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverToPickupCommandIsNotConstructed)
}

func (c AssignDriverToPickupCommand) PickupID() kernel.UUID { return c.pickupID }
func (c AssignDriverToPickupCommand) DriverID() kernel.UUID { return c.driverID }
