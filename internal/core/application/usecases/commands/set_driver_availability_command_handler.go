package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/ports"
)

type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
	locker     ports.Locker
}

func NewSetDriverAvailabilityCommandHandler(
	uowFactory DriverUoWFactory,
	locker ports.Locker,
) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, command SetDriverAvailabilityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return updateDriver(ctx, h.uowFactory, h.locker, command.DriverID(), func(d *driver.Driver) {
		d.SetAvailability(command.Available(), now())
	})
}
