package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

type MarkPickupInStorageCommandHandler struct {
	uowFactory PickupUoWFactory
	locker     ports.Locker
}

func NewMarkPickupInStorageCommandHandler(uowFactory PickupUoWFactory, locker ports.Locker) MarkPickupInStorageCommandHandler {
	return MarkPickupInStorageCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h MarkPickupInStorageCommandHandler) Handle(ctx context.Context, command MarkPickupInStorageCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, ports.PickupLockKey(command.PickupID()))
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

	if err = pk.MarkInStorage(now()); err != nil {
		return err
	}

	if err = pickupRepo.Update(ctx, pk); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
