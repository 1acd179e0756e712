package commands

import (
	"context"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// AssignDriverToPickupCommandHandler sends a driver to collect a scheduled
// pickup. The driver must be approved and available.
type AssignDriverToPickupCommandHandler struct {
	uowFactory DispatchUoWFactory
	locker     ports.Locker
	dispatcher services.DriverDispatcher
}

func NewAssignDriverToPickupCommandHandler(
	uowFactory DispatchUoWFactory,
	locker ports.Locker,
) AssignDriverToPickupCommandHandler {
	return AssignDriverToPickupCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		dispatcher: services.NewDriverDispatcher(),
	}
}

func (h AssignDriverToPickupCommandHandler) Handle(ctx context.Context, command AssignDriverToPickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx,
		ports.PickupLockKey(command.PickupID()),
		ports.DriverLockKey(command.DriverID()),
	)
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickupRepo := uow.PickupRepository()

	pk, err := pickupRepo.Get(ctx, command.PickupID())
	if err != nil {
		return err
	}

	d, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.AssignToPickup(pk, d); err != nil {
		return err
	}

	if err = pickupRepo.Update(ctx, pk); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
