package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/ports"
)

type CancelParcelCommandHandler struct {
	transition parcelTransition
}

func NewCancelParcelCommandHandler(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		transition: newParcelTransition(uowFactory, locker),
	}
}

func (h CancelParcelCommandHandler) Handle(ctx context.Context, command CancelParcelCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.transition.run(ctx, command.ParcelID(), func(p *parcel.Parcel, now time.Time) (parcel.Transition, error) {
		return p.Cancel(command.Role(), now)
	})
}
