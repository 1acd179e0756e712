package queries

import (
	"context"
	"database/sql"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetShopBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetShopBalanceQueryHandler(db *gorm.DB) GetShopBalanceQueryHandler {
	return GetShopBalanceQueryHandler{db: db}
}

func (h GetShopBalanceQueryHandler) Handle(ctx context.Context, query GetShopBalanceQuery) (ShopBalanceView, error) {
	if err := query.Validate(); err != nil {
		return ShopBalanceView{}, err
	}

	var (
		view                                          ShopBalanceView
		id                                            uuid.UUID
		fees, toCollect, totalCollected, settled, rev decimal.Decimal
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			is_approved,
			shipping_fees,
			to_collect,
			total_collected,
			settled,
			revenue
		FROM shops
		WHERE id = ?
	`, query.ShopID().String()).Row().Scan(
		&id,
		&view.Name,
		&view.IsApproved,
		&fees,
		&toCollect,
		&totalCollected,
		&settled,
		&rev,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ShopBalanceView{}, errs.NewObjectNotFoundError("shop", query.ShopID())
	}
	if err != nil {
		return ShopBalanceView{}, err
	}

	if view.ShopID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ShopBalanceView{}, err
	}
	amounts, err := toMoney(fees, toCollect, totalCollected, settled, rev)
	if err != nil {
		return ShopBalanceView{}, err
	}
	view.ShippingFees, view.ToCollect, view.TotalCollected, view.Settled, view.Revenue =
		amounts[0], amounts[1], amounts[2], amounts[3], amounts[4]

	return view, nil
}
