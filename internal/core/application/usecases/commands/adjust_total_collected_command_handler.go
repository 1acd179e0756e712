package commands

import (
	"context"

	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
)

type AdjustTotalCollectedCommandHandler struct {
	uowFactory LedgerUoWFactory
	locker     ports.Locker
}

func NewAdjustTotalCollectedCommandHandler(uowFactory LedgerUoWFactory, locker ports.Locker) AdjustTotalCollectedCommandHandler {
	return AdjustTotalCollectedCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h AdjustTotalCollectedCommandHandler) Handle(ctx context.Context, command AdjustTotalCollectedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return runShopLedger(ctx, h.uowFactory, h.locker, command.ShopID(), nil,
		func(_ context.Context, _ LedgerUoW, s *shop.Shop) ([]*shop.MoneyTransaction, error) {
			row, err := s.AdjustTotalCollected(command.Amount(), command.Reason(), command.Direction(), now())
			if err != nil {
				return nil, err
			}
			return []*shop.MoneyTransaction{row}, nil
		})
}
