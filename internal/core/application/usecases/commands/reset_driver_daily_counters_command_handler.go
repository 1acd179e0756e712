package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/ports"
)

// ResetDriverDailyCountersCommandHandler zeroes assignedToday driver by
// driver, each under its own lock and transaction, so a long run never
// blocks dispatch for more than one driver at a time.
type ResetDriverDailyCountersCommandHandler struct {
	uowFactory DriverUoWFactory
	locker     ports.Locker
}

func NewResetDriverDailyCountersCommandHandler(
	uowFactory DriverUoWFactory,
	locker ports.Locker,
) ResetDriverDailyCountersCommandHandler {
	return ResetDriverDailyCountersCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

// Handle returns how many drivers had a non-zero counter.
func (h ResetDriverDailyCountersCommandHandler) Handle(
	ctx context.Context,
	command ResetDriverDailyCountersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	drivers, err := h.uowFactory.Create().DriverRepository().List(ctx)
	if err != nil {
		return 0, err
	}

	reset := 0
	for _, listed := range drivers {
		if listed.AssignedToday() == 0 {
			continue
		}
		err := updateDriver(ctx, h.uowFactory, h.locker, listed.ID(), func(d *driver.Driver) {
			d.ResetDailyCounter()
		})
		if err != nil {
			return reset, err
		}
		reset++
	}

	return reset, nil
}
