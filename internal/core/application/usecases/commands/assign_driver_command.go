package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand binds a driver to a parcel without changing its
// status. Assigning the driver the parcel already has is a no-op for the
// driver's counters.
type AssignDriverCommand struct {
	parcelID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(parcelID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(parcelID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	return AssignDriverCommand{
		parcelID: parcelID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AssignDriverCommand) DriverID() kernel.UUID { return c.driverID }
