package queries

import (
	"context"
	"database/sql"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListMoneyTransactionsQueryHandler struct {
	db *gorm.DB
}

func NewListMoneyTransactionsQueryHandler(db *gorm.DB) ListMoneyTransactionsQueryHandler {
	return ListMoneyTransactionsQueryHandler{db: db}
}

// Handle returns an empty slice for a shop without rows; it does not check
// that the shop exists.
func (h ListMoneyTransactionsQueryHandler) Handle(
	ctx context.Context,
	query ListMoneyTransactionsQuery,
) ([]MoneyTransactionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			attribute,
			change_type,
			amount,
			description,
			created_at
		FROM money_transactions
		WHERE shop_id = @shop AND (CAST(@attribute AS text) = '' OR attribute = @attribute)
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset
	`, sql.Named("shop", query.ShopID().String()),
		sql.Named("attribute", string(query.Attribute())),
		sql.Named("limit", query.Limit()),
		sql.Named("offset", query.Offset()),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]MoneyTransactionView, 0)
	for rows.Next() {
		var (
			view        MoneyTransactionView
			id          uuid.UUID
			driverID    uuid.NullUUID
			amount      decimal.Decimal
			description sql.NullString
		)
		err = rows.Scan(
			&id,
			&driverID,
			&view.Attribute,
			&view.ChangeType,
			&amount,
			&description,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.DriverID, err = nullableID(driverID); err != nil {
			return nil, err
		}
		if view.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		view.Description = description.String
		transactions = append(transactions, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
