package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// DeletePickupCommandHandler detaches every parcel and deletes the pickup in
// one transaction, so no parcel is ever left scheduled for a pickup that no
// longer exists.
type DeletePickupCommandHandler struct {
	uowFactory PickupUoWFactory
	locker     ports.Locker
}

func NewDeletePickupCommandHandler(uowFactory PickupUoWFactory, locker ports.Locker) DeletePickupCommandHandler {
	return DeletePickupCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h DeletePickupCommandHandler) Handle(ctx context.Context, command DeletePickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlockPickup, err := h.locker.Lock(ctx, ports.PickupLockKey(command.PickupID()))
	if err != nil {
		return err
	}
	defer unlockPickup()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickupRepo := uow.PickupRepository()
	parcelRepo := uow.ParcelRepository()

	pk, err := pickupRepo.Get(ctx, command.PickupID())
	if err != nil {
		return err
	}

	if err = pk.EnsureDeletable(); err != nil {
		return err
	}

	unlockParcels, err := h.locker.Lock(ctx, parcelLockKeys(pk.ParcelIDs())...)
	if err != nil {
		return err
	}
	defer unlockParcels()

	parcels, err := parcelRepo.ListByPickup(ctx, pk.ID())
	if err != nil {
		return err
	}

	at := now()
	for _, p := range parcels {
		if _, err = p.Unschedule(at); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = pickupRepo.Delete(ctx, pk.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
