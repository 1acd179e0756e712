// Package parcelrepo persists the parcel aggregate: one parcels row plus its
// item lines and notes in child tables.
package parcelrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item kinds stored in parcel_items.
const (
	kindLine = "line"
	kindTake = "take"
	kindGive = "give"
)

type ParcelDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber     string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	ShopID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Flow               int             `gorm:"type:smallint;not null"`
	Status             int             `gorm:"type:smallint;not null;index"`
	DriverID           *uuid.UUID      `gorm:"type:uuid;index"`
	PickupID           *uuid.UUID      `gorm:"type:uuid;index"`
	CODAmount          decimal.Decimal `gorm:"column:cod_amount;type:numeric(14,2);not null"`
	DeliveryCost       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsPaid             bool            `gorm:"not null"`
	CODState           int             `gorm:"column:cod_state;type:smallint;not null"`
	CollectedAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RejectionPaid      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RejectionMethod    string          `gorm:"type:varchar(16)"`
	IsExchange         bool            `gorm:"not null"`
	ExchangeCashDelta  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ExchangeDirection  int             `gorm:"type:smallint;not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time
	Version            int64           `gorm:"not null"`
	Items              []ParcelItemDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Notes              []ParcelNoteDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// ParcelItemDTO is one item line. Kind separates the ordered lines of the
// parcel from the take and give lists of an exchange manifest.
type ParcelItemDTO struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	ParcelID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind              string    `gorm:"type:varchar(8);not null"`
	Position          int       `gorm:"not null"`
	Description       string    `gorm:"type:varchar(255);not null"`
	Quantity          int       `gorm:"not null"`
	DeliveredQuantity *int
}

func (ParcelItemDTO) TableName() string {
	return "parcel_items"
}

type ParcelNoteDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ParcelID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	Text       string    `gorm:"type:text;not null"`
	AuthorRole string    `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ParcelNoteDTO) TableName() string {
	return "parcel_notes"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	s := p.Snapshot()
	id := s.ID.Bytes()

	dto := ParcelDTO{
		ID:                 id,
		TrackingNumber:     s.TrackingNumber,
		ShopID:             s.ShopID.Bytes(),
		Flow:               int(s.Flow),
		Status:             int(s.Status),
		DriverID:           rawID(s.DriverID),
		PickupID:           rawID(s.PickupID),
		CODAmount:          s.CODAmount.Decimal(),
		DeliveryCost:       s.DeliveryCost.Decimal(),
		IsPaid:             s.IsPaid,
		CODState:           int(s.CODState),
		CollectedAmount:    s.CollectedAmount.Decimal(),
		RejectionPaid:      s.RejectionPaid.Decimal(),
		RejectionMethod:    string(s.RejectionMethod),
		CreatedAt:          s.CreatedAt,
		ActualPickupTime:   s.ActualPickupTime,
		ActualDeliveryTime: s.ActualDeliveryTime,
		Version:            s.Version,
	}

	for i, line := range s.ItemLines {
		item := ParcelItemDTO{
			ParcelID:    id,
			Kind:        kindLine,
			Position:    i,
			Description: line.Description(),
			Quantity:    line.Quantity(),
		}
		if i < len(s.DeliveredLines) {
			q := s.DeliveredLines[i].Quantity()
			item.DeliveredQuantity = &q
		}
		dto.Items = append(dto.Items, item)
	}

	if s.Exchange != nil {
		dto.IsExchange = true
		dto.ExchangeCashDelta = s.Exchange.CashDelta().Decimal()
		dto.ExchangeDirection = int(s.Exchange.CashDirection())
		dto.Items = append(dto.Items, manifestItems(id, kindTake, s.Exchange.Take())...)
		dto.Items = append(dto.Items, manifestItems(id, kindGive, s.Exchange.Give())...)
	}

	for i, note := range s.Notes {
		dto.Notes = append(dto.Notes, ParcelNoteDTO{
			ParcelID:   id,
			Position:   i,
			Text:       note.Text(),
			AuthorRole: note.AuthorRole().String(),
			CreatedAt:  note.CreatedAt(),
		})
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := optionalID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	pickupID, err := optionalID(dto.PickupID)
	if err != nil {
		return nil, err
	}

	amounts := make([]kernel.Money, 0, 4)
	for _, d := range []decimal.Decimal{dto.CODAmount, dto.DeliveryCost, dto.CollectedAmount, dto.RejectionPaid} {
		m, moneyErr := kernel.NewMoney(d)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amounts = append(amounts, m)
	}

	var (
		lines, delivered, take, give []parcel.ItemLine
		hasDelivered                 bool
	)
	for _, item := range dto.Items {
		line := parcel.RestoreItemLine(item.Description, item.Quantity)
		switch item.Kind {
		case kindLine:
			lines = append(lines, line)
			q := 0
			if item.DeliveredQuantity != nil {
				hasDelivered = true
				q = *item.DeliveredQuantity
			}
			delivered = append(delivered, parcel.RestoreItemLine(item.Description, q))
		case kindTake:
			take = append(take, line)
		case kindGive:
			give = append(give, line)
		}
	}
	if !hasDelivered {
		delivered = nil
	}

	var exchange *parcel.ExchangeManifest
	if dto.IsExchange {
		delta, moneyErr := kernel.NewMoney(dto.ExchangeCashDelta)
		if moneyErr != nil {
			return nil, moneyErr
		}
		manifest, manifestErr := parcel.NewExchangeManifest(take, give, delta, parcel.CashDirection(dto.ExchangeDirection))
		if manifestErr != nil {
			return nil, manifestErr
		}
		exchange = &manifest
	}

	notes := make([]parcel.Note, 0, len(dto.Notes))
	for _, n := range dto.Notes {
		role, roleErr := kernel.ParseRole(n.AuthorRole)
		if roleErr != nil {
			return nil, roleErr
		}
		notes = append(notes, parcel.RestoreNote(n.Text, role, n.CreatedAt))
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:                 id,
		TrackingNumber:     dto.TrackingNumber,
		ShopID:             shopID,
		Flow:               parcel.Flow(dto.Flow),
		Status:             parcel.Status(dto.Status),
		DriverID:           driverID,
		PickupID:           pickupID,
		CODAmount:          amounts[0],
		DeliveryCost:       amounts[1],
		IsPaid:             dto.IsPaid,
		CODState:           parcel.CODState(dto.CODState),
		ItemLines:          lines,
		DeliveredLines:     delivered,
		CollectedAmount:    amounts[2],
		Notes:              notes,
		RejectionPaid:      amounts[3],
		RejectionMethod:    parcel.PaymentMethod(dto.RejectionMethod),
		Exchange:           exchange,
		CreatedAt:          dto.CreatedAt,
		ActualPickupTime:   dto.ActualPickupTime,
		ActualDeliveryTime: dto.ActualDeliveryTime,
		Version:            dto.Version,
	})
}

func manifestItems(parcelID uuid.UUID, kind string, lines []parcel.ItemLine) []ParcelItemDTO {
	items := make([]ParcelItemDTO, 0, len(lines))
	for i, line := range lines {
		items = append(items, ParcelItemDTO{
			ParcelID:    parcelID,
			Kind:        kind,
			Position:    i,
			Description: line.Description(),
			Quantity:    line.Quantity(),
		})
	}
	return items
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
