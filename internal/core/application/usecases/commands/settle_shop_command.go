package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrSettleShopCommandIsNotConstructed = errors.New(
	"SettleShopCommand must be created via NewSettleShopCommand constructor",
)

// SettleShopCommand pays collected COD out to a shop.
type SettleShopCommand struct {
	shopID kernel.UUID
	amount kernel.Money

	guard guard.ConstructorGuard
}

func NewSettleShopCommand(shopID kernel.UUID, amount kernel.Money) (SettleShopCommand, error) {
	if err := shopID.Validate(); err != nil {
		return SettleShopCommand{}, err
	}
	return SettleShopCommand{
		shopID: shopID,
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SettleShopCommand) Validate() error {
	return c.guard.Validate(ErrSettleShopCommandIsNotConstructed)
}

func (c SettleShopCommand) ShopID() kernel.UUID  { return c.shopID }
func (c SettleShopCommand) Amount() kernel.Money { return c.amount }
