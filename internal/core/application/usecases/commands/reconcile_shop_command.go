package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrReconcileShopCommandIsNotConstructed = errors.New(
	"ReconcileShopCommand must be created via NewReconcileShopCommand constructor",
)

// ReconcileShopCommand compares a shop's balances with its ledger. With
// repair set, drifted balances are overwritten by the recomputed ones.
type ReconcileShopCommand struct {
	shopID kernel.UUID
	repair bool

	guard guard.ConstructorGuard
}

func NewReconcileShopCommand(shopID kernel.UUID, repair bool) (ReconcileShopCommand, error) {
	if err := shopID.Validate(); err != nil {
		return ReconcileShopCommand{}, err
	}
	return ReconcileShopCommand{
		shopID: shopID,
		repair: repair,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileShopCommand) Validate() error {
	return c.guard.Validate(ErrReconcileShopCommandIsNotConstructed)
}

func (c ReconcileShopCommand) ShopID() kernel.UUID { return c.shopID }
func (c ReconcileShopCommand) Repair() bool        { return c.repair }
