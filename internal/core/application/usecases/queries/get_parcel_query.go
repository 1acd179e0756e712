// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the tables and return flat read models; they
// never load aggregates and never take locks.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel with its item lines and notes.
//
// Example:
//
//	query, err := NewGetParcelQuery(parcelID)
//	handler := NewGetParcelQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown id
//	}
type GetParcelQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.UUID { return q.parcelID }

// ParcelView is the read model of a parcel. Money amounts keep two decimals.
type ParcelView struct {
	ID                 kernel.UUID
	TrackingNumber     string
	ShopID             kernel.UUID
	Flow               string
	Status             string
	DriverID           *kernel.UUID
	PickupID           *kernel.UUID
	CODAmount          kernel.Money
	DeliveryCost       kernel.Money
	IsPaid             bool
	CollectedAmount    kernel.Money
	RejectionPaid      kernel.Money
	RejectionMethod    string
	IsExchange         bool
	CreatedAt          time.Time
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time
	Version            int64
	Items              []ItemLineView
	Notes              []NoteView
}

// ItemLineView is one line of a parcel. Kind is "line" for the parcel's own
// lines and "take" or "give" for an exchange manifest. DeliveredQuantity is
// set only after a partial delivery.
type ItemLineView struct {
	Kind              string
	Description       string
	Quantity          int
	DeliveredQuantity *int
}

type NoteView struct {
	Text       string
	AuthorRole string
	CreatedAt  time.Time
}
