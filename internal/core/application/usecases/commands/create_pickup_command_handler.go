package commands

import (
	"context"
	"fmt"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// CreatePickupCommandHandler creates the pickup and schedules all of its
// parcels in one transaction. A single parcel that can not be scheduled
// fails the whole command.
type CreatePickupCommandHandler struct {
	uowFactory PickupUoWFactory
	locker     ports.Locker
}

func NewCreatePickupCommandHandler(uowFactory PickupUoWFactory, locker ports.Locker) CreatePickupCommandHandler {
	return CreatePickupCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h CreatePickupCommandHandler) Handle(ctx context.Context, command CreatePickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	keys := append([]string{ports.PickupLockKey(command.PickupID())}, parcelLockKeys(command.ParcelIDs())...)
	unlock, err := h.locker.Lock(ctx, keys...)
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

	parcelRepo := uow.ParcelRepository()

	if _, err = uow.ShopRepository().Get(ctx, command.ShopID()); err != nil {
		return err
	}

	pk, err := pickup.NewPickup(
		command.PickupID(),
		command.ShopID(),
		command.ScheduledTime(),
		command.Address(),
		command.ParcelIDs(),
	)
	if err != nil {
		return err
	}

	at := now()
	parcels := make([]*parcel.Parcel, 0, len(pk.ParcelIDs()))
	for _, id := range pk.ParcelIDs() {
		p, err := parcelRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !p.ShopID().IsEqual(command.ShopID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"parcel",
				fmt.Errorf("%s belongs to another shop", p.TrackingNumber()),
			)
		}
		if _, err = p.Schedule(pk.ID(), at); err != nil {
			return err
		}
		parcels = append(parcels, p)
	}

	if err = uow.PickupRepository().Add(ctx, pk); err != nil {
		return err
	}

	for _, p := range parcels {
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
