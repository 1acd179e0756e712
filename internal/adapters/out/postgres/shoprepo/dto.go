// Package shoprepo persists the shop ledger: the shops table holding the
// balance projection and the append-only money_transactions table.
package shoprepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShopDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name           string          `gorm:"type:varchar(255);not null"`
	ShippingFees   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsApproved     bool            `gorm:"not null"`
	ToCollect      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalCollected decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Settled        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Revenue        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Version        int64           `gorm:"not null"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

type MoneyTransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_money_transactions_shop_created,priority:1"`
	DriverID    *uuid.UUID      `gorm:"type:uuid;index"`
	Attribute   string          `gorm:"type:varchar(32);not null"`
	ChangeType  string          `gorm:"type:varchar(16);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null;index:idx_money_transactions_shop_created,priority:2"`
}

func (MoneyTransactionDTO) TableName() string {
	return "money_transactions"
}

func fromDomain(s *shop.Shop) ShopDTO {
	b := s.Balances()
	return ShopDTO{
		ID:             s.ID().Bytes(),
		Name:           s.Name(),
		ShippingFees:   s.ShippingFees().Decimal(),
		IsApproved:     s.IsApproved(),
		ToCollect:      b.ToCollect.Decimal(),
		TotalCollected: b.TotalCollected.Decimal(),
		Settled:        b.Settled.Decimal(),
		Revenue:        b.Revenue.Decimal(),
		Version:        s.Version(),
	}
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	values := make([]kernel.Money, 0, 5)
	for _, d := range []decimal.Decimal{dto.ShippingFees, dto.ToCollect, dto.TotalCollected, dto.Settled, dto.Revenue} {
		m, moneyErr := kernel.NewMoney(d)
		if moneyErr != nil {
			return nil, moneyErr
		}
		values = append(values, m)
	}

	return shop.RestoreShop(id, dto.Name, values[0], dto.IsApproved, shop.Balances{
		ToCollect:      values[1],
		TotalCollected: values[2],
		Settled:        values[3],
		Revenue:        values[4],
	}, dto.Version)
}

func transactionFromDomain(t *shop.MoneyTransaction) MoneyTransactionDTO {
	var driverID *uuid.UUID
	if id := t.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}
	return MoneyTransactionDTO{
		ID:          t.ID().Bytes(),
		ShopID:      t.ShopID().Bytes(),
		DriverID:    driverID,
		Attribute:   t.Attribute().String(),
		ChangeType:  string(t.ChangeType()),
		Amount:      t.Amount().Decimal(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt(),
	}
}

func transactionToDomain(dto MoneyTransactionDTO) (*shop.MoneyTransaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	attribute, err := shop.ParseAttribute(dto.Attribute)
	if err != nil {
		return nil, err
	}
	changeType, err := shop.ParseChangeType(dto.ChangeType)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return shop.RestoreMoneyTransaction(id, shopID, driverID, attribute, changeType, amount, dto.Description, dto.CreatedAt)
}
