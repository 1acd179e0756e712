package commands

import (
	"context"

	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
)

// SettleShopCommandHandler moves the settled amount from TotalCollected to
// Settled. An amount above TotalCollected is refused and nothing changes.
type SettleShopCommandHandler struct {
	uowFactory LedgerUoWFactory
	locker     ports.Locker
}

func NewSettleShopCommandHandler(uowFactory LedgerUoWFactory, locker ports.Locker) SettleShopCommandHandler {
	return SettleShopCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h SettleShopCommandHandler) Handle(ctx context.Context, command SettleShopCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return runShopLedger(ctx, h.uowFactory, h.locker, command.ShopID(), nil,
		func(_ context.Context, _ LedgerUoW, s *shop.Shop) ([]*shop.MoneyTransaction, error) {
			return s.Settle(command.Amount(), now())
		})
}
