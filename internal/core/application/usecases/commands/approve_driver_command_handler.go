package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/ports"
)

type ApproveDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	locker     ports.Locker
}

func NewApproveDriverCommandHandler(uowFactory DriverUoWFactory, locker ports.Locker) ApproveDriverCommandHandler {
	return ApproveDriverCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h ApproveDriverCommandHandler) Handle(ctx context.Context, command ApproveDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return updateDriver(ctx, h.uowFactory, h.locker, command.DriverID(), func(d *driver.Driver) {
		d.Approve()
	})
}
