package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
)

// shopLedgerFunc changes a locked shop and returns the ledger rows written.
type shopLedgerFunc func(ctx context.Context, uow LedgerUoW, s *shop.Shop) ([]*shop.MoneyTransaction, error)

// runShopLedger locks the shop, applies fn and stores the shop together with
// the rows in one transaction. The shop is only written when fn produced
// rows or asks for it through forceUpdate.
func runShopLedger(
	ctx context.Context,
	uowFactory LedgerUoWFactory,
	locker ports.Locker,
	shopID kernel.UUID,
	forceUpdate func() bool,
	fn shopLedgerFunc,
) error {
	unlock, err := locker.Lock(ctx, ports.ShopLockKey(shopID))
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

	shopRepo := uow.ShopRepository()

	s, err := shopRepo.Get(ctx, shopID)
	if err != nil {
		return err
	}

	rows, err := fn(ctx, uow, s)
	if err != nil {
		return err
	}

	if len(rows) > 0 || (forceUpdate != nil && forceUpdate()) {
		if err = shopRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		if err = uow.MoneyTransactionRepository().Add(ctx, rows...); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
