package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand withdraws a parcel before a driver picked it up.
// A scheduled parcel leaves its pickup.
type CancelParcelCommand struct {
	parcelID kernel.UUID
	role     kernel.Role

	guard guard.ConstructorGuard
}

func NewCancelParcelCommand(parcelID kernel.UUID, role kernel.Role) (CancelParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), role.Validate()); err != nil {
		return CancelParcelCommand{}, err
	}
	return CancelParcelCommand{
		parcelID: parcelID,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

func (c CancelParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c CancelParcelCommand) Role() kernel.Role     { return c.role }
