package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/ports"
)

// RejectParcelCommandHandler moves a parcel into the rejection flow and
// releases its COD booking. A paid driver rejection is recognized as
// revenue in the same transaction.
type RejectParcelCommandHandler struct {
	transition parcelTransition
}

func NewRejectParcelCommandHandler(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) RejectParcelCommandHandler {
	return RejectParcelCommandHandler{
		transition: newParcelTransition(uowFactory, locker),
	}
}

func (h RejectParcelCommandHandler) Handle(ctx context.Context, command RejectParcelCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.transition.run(ctx, command.ParcelID(), func(p *parcel.Parcel, now time.Time) (parcel.Transition, error) {
		return p.Reject(command.Role(), command.AmountPaid(), command.PaymentMethod(), now)
	})
}
