package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/ports"
)

type RecordPartialDeliveryCommandHandler struct {
	transition parcelTransition
}

func NewRecordPartialDeliveryCommandHandler(
	uowFactory ParcelLedgerUoWFactory,
	locker ports.Locker,
) RecordPartialDeliveryCommandHandler {
	return RecordPartialDeliveryCommandHandler{
		transition: newParcelTransition(uowFactory, locker),
	}
}

func (h RecordPartialDeliveryCommandHandler) Handle(ctx context.Context, command RecordPartialDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.transition.run(ctx, command.ParcelID(), func(p *parcel.Parcel, now time.Time) (parcel.Transition, error) {
		return p.RecordPartialDelivery(command.Lines(), command.Collected(), now)
	})
}
