package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrApproveDriverCommandIsNotConstructed = errors.New(
	"ApproveDriverCommand must be created via NewApproveDriverCommand constructor",
)

type ApproveDriverCommand struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveDriverCommand(driverID kernel.UUID) (ApproveDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ApproveDriverCommand{}, err
	}
	return ApproveDriverCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveDriverCommand) Validate() error {
	return c.guard.Validate(ErrApproveDriverCommandIsNotConstructed)
}

func (c ApproveDriverCommand) DriverID() kernel.UUID { return c.driverID }
