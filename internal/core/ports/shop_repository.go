package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
)

// ShopRepository persists the shop aggregate and its balance projection.
// Ledger rows are written through MoneyTransactionRepository in the same
// unit of work.
type ShopRepository interface {
	Add(ctx context.Context, aggregate *shop.Shop) error

	// Update is guarded by the shop version like ParcelRepository.Update.
	Update(ctx context.Context, aggregate *shop.Shop) error

	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)

	List(ctx context.Context) ([]*shop.Shop, error)
}

// MoneyTransactionRepository is the append-only shop ledger.
type MoneyTransactionRepository interface {
	// Add appends rows. Calling it without rows is a no-op.
	Add(ctx context.Context, rows ...*shop.MoneyTransaction) error

	// ListByShop returns the ledger of one shop, oldest first.
	ListByShop(ctx context.Context, shopID kernel.UUID) ([]*shop.MoneyTransaction, error)
}
