package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrBulkAssignDriverCommandIsNotConstructed = errors.New(
	"BulkAssignDriverCommand must be created via NewBulkAssignDriverCommand constructor",
)

// BulkAssignDriverCommand assigns one driver to many parcels. Every parcel
// is assigned in its own transaction: one refusal does not undo the others.
type BulkAssignDriverCommand struct {
	parcelIDs []kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkAssignDriverCommand drops repeated parcel ids and keeps the first
// occurrence order.
func NewBulkAssignDriverCommand(parcelIDs []kernel.UUID, driverID kernel.UUID) (BulkAssignDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return BulkAssignDriverCommand{}, err
	}
	if len(parcelIDs) == 0 {
		return BulkAssignDriverCommand{}, errs.NewValueIsRequiredError("parcel ids")
	}

	seen := make(map[kernel.UUID]bool, len(parcelIDs))
	unique := make([]kernel.UUID, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return BulkAssignDriverCommand{}, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	return BulkAssignDriverCommand{
		parcelIDs: unique,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkAssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignDriverCommandIsNotConstructed)
}

func (c BulkAssignDriverCommand) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}

func (c BulkAssignDriverCommand) DriverID() kernel.UUID { return c.driverID }
