package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// MarkPickupCollectedCommandHandler marks the pickup picked up and moves
// every parcel that is still scheduled past the pickup boundary: regular
// parcels become pending and have their COD booked, exchange parcels go in
// transit. Parcels cancelled in the meantime are left alone.
type MarkPickupCollectedCommandHandler struct {
	uowFactory PickupUoWFactory
	locker     ports.Locker
	poster     services.LedgerPoster
}

func NewMarkPickupCollectedCommandHandler(uowFactory PickupUoWFactory, locker ports.Locker) MarkPickupCollectedCommandHandler {
	return MarkPickupCollectedCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		poster:     services.NewLedgerPoster(),
	}
}

func (h MarkPickupCollectedCommandHandler) Handle(ctx context.Context, command MarkPickupCollectedCommand) error {
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
	shopRepo := uow.ShopRepository()

	pk, err := pickupRepo.Get(ctx, command.PickupID())
	if err != nil {
		return err
	}

	keys := append(parcelLockKeys(pk.ParcelIDs()), ports.ShopLockKey(pk.ShopID()))
	unlockRest, err := h.locker.Lock(ctx, keys...)
	if err != nil {
		return err
	}
	defer unlockRest()

	s, err := shopRepo.Get(ctx, pk.ShopID())
	if err != nil {
		return err
	}

	at := now()
	if err = pk.MarkPickedUp(at); err != nil {
		return err
	}

	parcels, err := parcelRepo.ListByPickup(ctx, pk.ID())
	if err != nil {
		return err
	}

	var rows []*shop.MoneyTransaction
	for _, p := range parcels {
		if !p.Status().IsScheduled() {
			continue
		}
		tr, err := p.Advance(kernel.RoleSystem, at)
		if err != nil {
			return err
		}
		posted, err := h.poster.Post(p, s, tr)
		if err != nil {
			return err
		}
		rows = append(rows, posted...)

		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = pickupRepo.Update(ctx, pk); err != nil {
		return err
	}

	if len(rows) > 0 {
		if err = shopRepo.Update(ctx, s); err != nil {
			return err
		}
		if err = uow.MoneyTransactionRepository().Add(ctx, rows...); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
