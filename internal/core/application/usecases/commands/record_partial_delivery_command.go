package commands

import (
	"errors"
	"slices"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrRecordPartialDeliveryCommandIsNotConstructed = errors.New(
	"RecordPartialDeliveryCommand must be created via NewRecordPartialDeliveryCommand constructor",
)

// RecordPartialDeliveryCommand reports which item lines the customer kept
// and how much COD cash the driver collected. The rest goes back to the shop.
type RecordPartialDeliveryCommand struct {
	parcelID  kernel.UUID
	lines     []parcel.DeliveredLine
	collected kernel.Money

	guard guard.ConstructorGuard
}

func NewRecordPartialDeliveryCommand(
	parcelID kernel.UUID,
	lines []parcel.DeliveredLine,
	collected kernel.Money,
) (RecordPartialDeliveryCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return RecordPartialDeliveryCommand{}, err
	}
	if len(lines) == 0 {
		return RecordPartialDeliveryCommand{}, errs.NewValueIsRequiredError("delivered lines")
	}

	return RecordPartialDeliveryCommand{
		parcelID:  parcelID,
		lines:     slices.Clone(lines),
		collected: collected,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPartialDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordPartialDeliveryCommandIsNotConstructed)
}

func (c RecordPartialDeliveryCommand) ParcelID() kernel.UUID         { return c.parcelID }
func (c RecordPartialDeliveryCommand) Lines() []parcel.DeliveredLine { return slices.Clone(c.lines) }
func (c RecordPartialDeliveryCommand) Collected() kernel.Money       { return c.collected }
