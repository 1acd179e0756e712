package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrRegisterShopCommandIsNotConstructed = errors.New(
	"RegisterShopCommand must be created via NewRegisterShopCommand constructor",
)

// RegisterShopCommand onboards a shop with empty balances. shippingFees is
// what the platform earns for every delivered parcel.
type RegisterShopCommand struct {
	shopID       kernel.UUID
	name         string
	shippingFees kernel.Money
	approved     bool

	guard guard.ConstructorGuard
}

func NewRegisterShopCommand(
	shopID kernel.UUID,
	name string,
	shippingFees kernel.Money,
	approved bool,
) (RegisterShopCommand, error) {
	if err := shopID.Validate(); err != nil {
		return RegisterShopCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RegisterShopCommand{}, errs.NewValueIsRequiredError("shop name")
	}

	return RegisterShopCommand{
		shopID:       shopID,
		name:         name,
		shippingFees: shippingFees,
		approved:     approved,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterShopCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShopCommandIsNotConstructed)
}

func (c RegisterShopCommand) ShopID() kernel.UUID        { return c.shopID }
func (c RegisterShopCommand) Name() string               { return c.name }
func (c RegisterShopCommand) ShippingFees() kernel.Money { return c.shippingFees }
func (c RegisterShopCommand) Approved() bool             { return c.approved }
