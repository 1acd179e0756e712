package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetShopBalanceQueryIsNotConstructed = errors.New(
	"GetShopBalanceQuery must be created via NewGetShopBalanceQuery constructor",
)

type GetShopBalanceQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShopBalanceQuery(shopID kernel.UUID) (GetShopBalanceQuery, error) {
	if err := shopID.Validate(); err != nil {
		return GetShopBalanceQuery{}, err
	}
	return GetShopBalanceQuery{shopID: shopID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShopBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetShopBalanceQueryIsNotConstructed)
}

func (q GetShopBalanceQuery) ShopID() kernel.UUID { return q.shopID }

// ShopBalanceView is the materialized balance projection of a shop.
type ShopBalanceView struct {
	ShopID         kernel.UUID
	Name           string
	IsApproved     bool
	ShippingFees   kernel.Money
	ToCollect      kernel.Money
	TotalCollected kernel.Money
	Settled        kernel.Money
	Revenue        kernel.Money
}
