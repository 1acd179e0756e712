package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRejectParcelCommandIsNotConstructed = errors.New(
	"RejectParcelCommand must be created via NewRejectParcelCommand constructor",
)

// RejectParcelCommand records a refused delivery. A driver rejection carries
// the shipping fee the customer paid anyway; the amount is clamped to the
// delivery cost by the parcel. Admin rejections ignore it.
type RejectParcelCommand struct {
	parcelID   kernel.UUID
	role       kernel.Role
	amountPaid decimal.Decimal
	method     parcel.PaymentMethod

	guard guard.ConstructorGuard
}

// NewRejectParcelCommand builds the command. method may be empty when
// nothing was paid.
func NewRejectParcelCommand(
	parcelID kernel.UUID,
	role kernel.Role,
	amountPaid decimal.Decimal,
	method parcel.PaymentMethod,
) (RejectParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), role.Validate()); err != nil {
		return RejectParcelCommand{}, err
	}
	if method != "" {
		if err := method.Validate(); err != nil {
			return RejectParcelCommand{}, err
		}
	}

	return RejectParcelCommand{
		parcelID:   parcelID,
		role:       role,
		amountPaid: amountPaid,
		method:     method,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RejectParcelCommand) Validate() error {
	return c.guard.Validate(ErrRejectParcelCommandIsNotConstructed)
}

func (c RejectParcelCommand) ParcelID() kernel.UUID               { return c.parcelID }
func (c RejectParcelCommand) Role() kernel.Role                   { return c.role }
func (c RejectParcelCommand) AmountPaid() decimal.Decimal         { return c.amountPaid }
func (c RejectParcelCommand) PaymentMethod() parcel.PaymentMethod { return c.method }
