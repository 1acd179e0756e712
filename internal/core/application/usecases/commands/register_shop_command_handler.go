package commands

import (
	"context"

	"lastmile/internal/core/domain/model/shop"
)

type RegisterShopCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewRegisterShopCommandHandler(uowFactory LedgerUoWFactory) RegisterShopCommandHandler {
	return RegisterShopCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with errs.ErrObjectAlreadyExists for a known shop id.
func (h RegisterShopCommandHandler) Handle(ctx context.Context, command RegisterShopCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, err := shop.NewShop(command.ShopID(), command.Name(), command.ShippingFees())
	if err != nil {
		return err
	}
	if command.Approved() {
		s.Approve()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShopRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
