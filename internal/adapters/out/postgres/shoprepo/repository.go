package shoprepo

import (
	"context"

	"lastmile/internal/adapters/out/postgres/dbutil"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"

	"gorm.io/gorm"
)

// GormShopRepository implements ShopRepository using GORM.
type GormShopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShopRepository(db *gorm.DB, tracker aggregateTracker) *GormShopRepository {
	return &GormShopRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dbutil.TranslateError(err, "shop", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the balance projection under the version guard.
func (r *GormShopRepository) Update(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = expected + 1

	if err := dbutil.UpdateVersioned(ctx, r.db, "shop", dto.ID, expected, &dto); err != nil {
		return err
	}

	aggregate.SetVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbutil.TranslateError(err, "shop", id.String())
	}

	return toDomain(dto)
}

func (r *GormShopRepository) List(ctx context.Context) ([]*shop.Shop, error) {
	var dtos []ShopDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shops := make([]*shop.Shop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, nil
}

// GormMoneyTransactionRepository implements MoneyTransactionRepository.
// Rows are only ever inserted.
type GormMoneyTransactionRepository struct {
	db *gorm.DB
}

func NewGormMoneyTransactionRepository(db *gorm.DB) *GormMoneyTransactionRepository {
	return &GormMoneyTransactionRepository{db: db}
}

func (r *GormMoneyTransactionRepository) Add(ctx context.Context, rows ...*shop.MoneyTransaction) error {
	if len(rows) == 0 {
		return nil
	}

	dtos := make([]MoneyTransactionDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, transactionFromDomain(row))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dbutil.TranslateError(err, "money transaction", rows[0].ID().String())
	}
	return nil
}

// ListByShop returns the ledger of shopID, oldest first.
func (r *GormMoneyTransactionRepository) ListByShop(ctx context.Context, shopID kernel.UUID) ([]*shop.MoneyTransaction, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MoneyTransactionDTO
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "shop_id = ?", shopID.Bytes()).Error; err != nil {
		return nil, err
	}

	rows := make([]*shop.MoneyTransaction, 0, len(dtos))
	for _, dto := range dtos {
		row, err := transactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
