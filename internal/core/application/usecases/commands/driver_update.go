package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

// updateDriver loads a driver under its lock, applies fn and stores it.
func updateDriver(
	ctx context.Context,
	uowFactory DriverUoWFactory,
	locker ports.Locker,
	driverID kernel.UUID,
	fn func(d *driver.Driver),
) error {
	unlock, err := locker.Lock(ctx, ports.DriverLockKey(driverID))
	if err != nil {
		return err
	}
	defer unlock()

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	d, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		return err
	}

	fn(d)

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
