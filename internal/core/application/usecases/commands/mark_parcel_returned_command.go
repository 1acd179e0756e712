package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrMarkParcelReturnedCommandIsNotConstructed = errors.New(
	"MarkParcelReturnedCommand must be created via NewMarkParcelReturnedCommand constructor",
)

// MarkParcelReturnedCommand closes the return of a cancelled or rejected
// parcel once it is back with the shop.
type MarkParcelReturnedCommand struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkParcelReturnedCommand(parcelID kernel.UUID) (MarkParcelReturnedCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return MarkParcelReturnedCommand{}, err
	}
	return MarkParcelReturnedCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MarkParcelReturnedCommand) Validate() error {
	return c.guard.Validate(ErrMarkParcelReturnedCommandIsNotConstructed)
}

func (c MarkParcelReturnedCommand) ParcelID() kernel.UUID { return c.parcelID }
