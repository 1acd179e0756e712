package parcel

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// Snapshot is the flat, persistence-facing view of a Parcel. Adapters map it
// to their own storage records; RestoreParcel turns it back into an aggregate.
type Snapshot struct {
	ID                 kernel.UUID
	TrackingNumber     string
	ShopID             kernel.UUID
	Flow               Flow
	Status             Status
	DriverID           *kernel.UUID
	PickupID           *kernel.UUID
	CODAmount          kernel.Money
	DeliveryCost       kernel.Money
	IsPaid             bool
	CODState           CODState
	ItemLines          []ItemLine
	DeliveredLines     []ItemLine
	CollectedAmount    kernel.Money
	Notes              []Note
	RejectionPaid      kernel.Money
	RejectionMethod    PaymentMethod
	Exchange           *ExchangeManifest
	CreatedAt          time.Time
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time
	Version            int64
}

// Snapshot copies the parcel state. Slices and pointers are not shared.
func (p *Parcel) Snapshot() Snapshot {
	var exchange *ExchangeManifest
	if p.exchange != nil {
		m := *p.exchange
		m.take = m.Take()
		m.give = m.Give()
		exchange = &m
	}

	return Snapshot{
		ID:                 p.id,
		TrackingNumber:     p.trackingNumber,
		ShopID:             p.shopID,
		Flow:               p.state.flow,
		Status:             p.state.status,
		DriverID:           copyID(p.driverID),
		PickupID:           copyID(p.pickupID),
		CODAmount:          p.codAmount,
		DeliveryCost:       p.deliveryCost,
		IsPaid:             p.isPaid,
		CODState:           p.codState,
		ItemLines:          p.ItemLines(),
		DeliveredLines:     p.DeliveredLines(),
		CollectedAmount:    p.collected,
		Notes:              p.Notes(),
		RejectionPaid:      p.rejectionPaid,
		RejectionMethod:    p.rejectionMethod,
		Exchange:           exchange,
		CreatedAt:          p.createdAt,
		ActualPickupTime:   copyTime(p.actualPickupTime),
		ActualDeliveryTime: copyTime(p.actualDeliveryTime),
		Version:            p.version,
	}
}

// RestoreParcel rebuilds a parcel read back from storage. It checks the
// structural invariants but does not replay transitions, and records no
// events.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	state, err := NewState(s.Flow, s.Status)
	if err != nil {
		return nil, err
	}

	if s.Status.RequiresDriver() && s.DriverID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"driver",
			fmt.Errorf("%s requires a driver", s.Status),
		)
	}

	p := &Parcel{
		state:              state,
		driverID:           copyID(s.DriverID),
		pickupID:           copyID(s.PickupID),
		codAmount:          s.CODAmount,
		deliveryCost:       s.DeliveryCost,
		isPaid:             s.IsPaid,
		codState:           s.CODState,
		deliveredLines:     append([]ItemLine(nil), s.DeliveredLines...),
		collected:          s.CollectedAmount,
		notes:              append([]Note(nil), s.Notes...),
		rejectionPaid:      s.RejectionPaid,
		rejectionMethod:    s.RejectionMethod,
		createdAt:          s.CreatedAt,
		actualPickupTime:   copyTime(s.ActualPickupTime),
		actualDeliveryTime: copyTime(s.ActualDeliveryTime),
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}
	if s.Exchange != nil {
		m := *s.Exchange
		m.take = m.Take()
		m.give = m.Give()
		p.exchange = &m
	}

	if err = errors.Join(
		p.setID(s.ID),
		p.setTrackingNumber(s.TrackingNumber),
		p.setShopID(s.ShopID),
		p.setItemLines(s.ItemLines),
	); err != nil {
		return nil, err
	}

	if p.rejectionPaid.GreaterThan(p.deliveryCost) {
		return nil, errs.NewValueIsOutOfRangeError("rejection shipping paid", p.rejectionPaid.String(), 0, p.deliveryCost.String())
	}

	return p, nil
}

// RestoreItemLine rebuilds a line read back from storage. Delivered lines of
// a partial delivery may carry a zero quantity.
func RestoreItemLine(description string, quantity int) ItemLine {
	return ItemLine{description: description, quantity: quantity}
}

// RestoreNote rebuilds a note read back from storage.
func RestoreNote(text string, authorRole kernel.Role, createdAt time.Time) Note {
	return Note{text: text, authorRole: authorRole, createdAt: createdAt}
}
