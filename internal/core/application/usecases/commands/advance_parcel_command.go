package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/guard"
)

var ErrAdvanceParcelCommandIsNotConstructed = errors.New(
	"AdvanceParcelCommand must be created via NewAdvanceParcelCommand constructor",
)

// AdvanceParcelCommand moves a parcel to the next status of its flow.
//
// expected is the status the caller saw. When it is nil the handler reads the
// parcel first and uses that state instead. Either way, a parcel that has
// moved on by the time the lock is held fails with
// errs.ErrConcurrentModification instead of advancing a second time.
//
// Example:
//
//	seen := parcel.PickedUp
//	cmd, err := NewAdvanceParcelCommand(parcelID, kernel.RoleDriver, &seen)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AdvanceParcelCommand struct {
	parcelID kernel.UUID
	role     kernel.Role
	expected *parcel.Status

	guard guard.ConstructorGuard
}

func NewAdvanceParcelCommand(parcelID kernel.UUID, role kernel.Role, expected *parcel.Status) (AdvanceParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), role.Validate()); err != nil {
		return AdvanceParcelCommand{}, err
	}
	if expected != nil {
		if err := expected.Validate(); err != nil {
			return AdvanceParcelCommand{}, err
		}
		status := *expected
		expected = &status
	}

	return AdvanceParcelCommand{
		parcelID: parcelID,
		role:     role,
		expected: expected,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceParcelCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceParcelCommandIsNotConstructed)
}

func (c AdvanceParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AdvanceParcelCommand) Role() kernel.Role     { return c.role }

// Expected returns the status the caller expects, or nil.
func (c AdvanceParcelCommand) Expected() *parcel.Status {
	if c.expected == nil {
		return nil
	}
	status := *c.expected
	return &status
}
