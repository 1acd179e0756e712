package commands

import (
	"context"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// CreateParcelCommandHandler persists a new parcel. A parcel created
// directly in pending books its COD into the shop's ToCollect in the same
// transaction.
type CreateParcelCommandHandler struct {
	uowFactory ParcelLedgerUoWFactory
	locker     ports.Locker
	poster     services.LedgerPoster
}

func NewCreateParcelCommandHandler(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		poster:     services.NewLedgerPoster(),
	}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, command CreateParcelCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, ports.ParcelLockKey(command.ParcelID()), ports.ShopLockKey(command.ShopID()))
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

	shopRepo := uow.ShopRepository()
	s, err := shopRepo.Get(ctx, command.ShopID())
	if err != nil {
		return err
	}

	at := now()
	var p *parcel.Parcel
	if manifest := command.Exchange(); manifest != nil {
		p, err = parcel.NewExchangeParcel(
			command.ParcelID(), command.TrackingNumber(), command.ShopID(),
			command.DeliveryCost(), *manifest, at,
		)
	} else {
		p, err = parcel.NewParcel(
			command.ParcelID(), command.TrackingNumber(), command.ShopID(),
			command.CODAmount(), command.DeliveryCost(), command.ItemLines(),
			command.InitialStatus(), at,
		)
	}
	if err != nil {
		return err
	}

	var rows []*shop.MoneyTransaction
	if p.Status() == parcel.Pending {
		booked, err := h.poster.Book(p, s, at)
		if err != nil {
			return err
		}
		rows = booked
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
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
