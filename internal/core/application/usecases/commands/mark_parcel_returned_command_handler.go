package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/ports"
)

type MarkParcelReturnedCommandHandler struct {
	transition parcelTransition
}

func NewMarkParcelReturnedCommandHandler(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) MarkParcelReturnedCommandHandler {
	return MarkParcelReturnedCommandHandler{
		transition: newParcelTransition(uowFactory, locker),
	}
}

func (h MarkParcelReturnedCommandHandler) Handle(ctx context.Context, command MarkParcelReturnedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.transition.run(ctx, command.ParcelID(), func(p *parcel.Parcel, now time.Time) (parcel.Transition, error) {
		return p.MarkReturned(now)
	})
}
