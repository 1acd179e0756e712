package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// transitionFunc executes one state machine operation on a locked parcel.
type transitionFunc func(p *parcel.Parcel, now time.Time) (parcel.Transition, error)

// parcelTransition runs a parcel operation and its ledger consequences as one
// unit: lock the parcel and then its shop, apply fn, post the transition to
// the shop ledger and persist parcel, shop and rows together. Any failure,
// including a refused debit, leaves everything unchanged.
type parcelTransition struct {
	uowFactory ParcelLedgerUoWFactory
	locker     ports.Locker
	poster     services.LedgerPoster
}

func newParcelTransition(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) parcelTransition {
	return parcelTransition{
		uowFactory: uowFactory,
		locker:     locker,
		poster:     services.NewLedgerPoster(),
	}
}

// observe reads the current state of a parcel without holding its lock.
func (t parcelTransition) observe(ctx context.Context, parcelID kernel.UUID) (parcel.State, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return parcel.State{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, parcelID)
	if err != nil {
		return parcel.State{}, err
	}
	return p.State(), nil
}

func (t parcelTransition) run(ctx context.Context, parcelID kernel.UUID, fn transitionFunc) error {
	unlockParcel, err := t.locker.Lock(ctx, ports.ParcelLockKey(parcelID))
	if err != nil {
		return err
	}
	defer unlockParcel()

	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	shopRepo := uow.ShopRepository()

	p, err := parcelRepo.Get(ctx, parcelID)
	if err != nil {
		return err
	}

	unlockShop, err := t.locker.Lock(ctx, ports.ShopLockKey(p.ShopID()))
	if err != nil {
		return err
	}
	defer unlockShop()

	s, err := shopRepo.Get(ctx, p.ShopID())
	if err != nil {
		return err
	}

	tr, err := fn(p, now())
	if err != nil {
		return err
	}

	rows, err := t.poster.Post(p, s, tr)
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
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
