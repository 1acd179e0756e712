package services

import (
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"
)

// LedgerPoster is a domain service that turns executed parcel transitions
// into shop ledger entries. It is the only place where the state machine
// and the ledger meet.
//
// Posting rules:
//   - entering pending (the pickup boundary) books the COD into ToCollect
//   - delivered: TotalCollected += COD, the booking leaves ToCollect and
//     Revenue += the shop's shipping fee
//   - delivered-awaiting-return: TotalCollected += the cash actually
//     collected, the booking leaves ToCollect, Revenue += shipping fee
//   - rejected and cancelled outcomes release the booking; a driver
//     rejection also recognizes the shipping fee the customer paid
//   - exchange-awaiting-return moves the exchange cash delta in or out of
//     TotalCollected
//
// A posting that would drive a balance negative fails before anything is
// written, and the caller must abandon the transition.
//
// Example usage:
//
//	tr, err := p.Advance(kernel.RoleDriver, now)
//	if err != nil {
//	    return err
//	}
//	rows, err := services.NewLedgerPoster().Post(p, s, tr)
//	if err != nil {
//	    return err // roll back: the parcel change must not persist alone
//	}
type LedgerPoster struct{}

func NewLedgerPoster() LedgerPoster {
	return LedgerPoster{}
}

// Book credits ToCollect with the parcel COD unless it is already booked or
// there is nothing to collect.
func (l LedgerPoster) Book(p *parcel.Parcel, s *shop.Shop, now time.Time) ([]*shop.MoneyTransaction, error) {
	if err := l.validate(p, s); err != nil {
		return nil, err
	}
	amount, ok := p.BookCOD()
	if !ok {
		return nil, nil
	}
	row, err := s.Credit(shop.ToCollect, amount, describe(p, "COD expected"), p.Driver(), now)
	if err != nil {
		return nil, err
	}
	return []*shop.MoneyTransaction{row}, nil
}

// Post applies the ledger consequences of tr and returns the rows written to
// the shop. Transitions without a money effect return no rows.
//
//nolint:exhaustive // only statuses with a money effect are listed
func (l LedgerPoster) Post(p *parcel.Parcel, s *shop.Shop, tr parcel.Transition) ([]*shop.MoneyTransaction, error) {
	if err := l.validate(p, s); err != nil {
		return nil, err
	}
	if !tr.ParcelID.IsEqual(p.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("belongs to parcel %s", tr.ParcelID))
	}

	switch tr.To.Status() {
	case parcel.Pending:
		return l.Book(p, s, tr.At)

	case parcel.Delivered:
		return l.settleOutcome(p, s, p.CODAmount(), "delivered", tr.At)

	case parcel.DeliveredAwaitingReturn:
		return l.settleOutcome(p, s, p.CollectedAmount(), "partially delivered", tr.At)

	case parcel.Rejected, parcel.Cancelled, parcel.CancelledAwaitingReturn:
		return l.release(p, s, tr.To.Status().String(), tr.At)

	case parcel.RejectedAwaitingReturn:
		rows, err := l.release(p, s, "rejected", tr.At)
		if err != nil {
			return nil, err
		}
		if tr.From.Flow() != parcel.MainFlow || !p.RejectionShippingPaid().IsPositive() {
			return rows, nil
		}
		fee, err := s.Credit(shop.Revenue, p.RejectionShippingPaid(),
			describe(p, "shipping paid on rejection ("+string(p.RejectionPaymentMethod())+")"), p.Driver(), tr.At)
		if err != nil {
			return nil, err
		}
		return append(rows, fee), nil

	case parcel.ExchangeAwaitingReturn:
		return l.exchangeCash(p, s, tr.At)
	}

	return nil, nil
}

// settleOutcome books the cash a driver brought back for a delivered parcel.
func (l LedgerPoster) settleOutcome(
	p *parcel.Parcel,
	s *shop.Shop,
	collected kernel.Money,
	what string,
	now time.Time,
) ([]*shop.MoneyTransaction, error) {
	var rows []*shop.MoneyTransaction

	if collected.IsPositive() {
		row, err := s.Credit(shop.TotalCollected, collected, describe(p, what), p.Driver(), now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	released, err := l.release(p, s, what, now)
	if err != nil {
		return nil, err
	}
	rows = append(rows, released...)

	if s.ShippingFees().IsPositive() {
		row, err := s.Credit(shop.Revenue, s.ShippingFees(), describe(p, "shipping fee"), p.Driver(), now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (l LedgerPoster) release(p *parcel.Parcel, s *shop.Shop, what string, now time.Time) ([]*shop.MoneyTransaction, error) {
	amount, ok := p.ReleaseCOD()
	if !ok {
		return nil, nil
	}
	row, err := s.Debit(shop.ToCollect, amount, describe(p, what), p.Driver(), now)
	if err != nil {
		return nil, err
	}
	return []*shop.MoneyTransaction{row}, nil
}

func (l LedgerPoster) exchangeCash(p *parcel.Parcel, s *shop.Shop, now time.Time) ([]*shop.MoneyTransaction, error) {
	manifest := p.Exchange()
	if manifest == nil || !manifest.CashDelta().IsPositive() {
		return nil, nil
	}

	var (
		row *shop.MoneyTransaction
		err error
	)
	switch manifest.CashDirection() {
	case parcel.TakeFromCustomer:
		row, err = s.Credit(shop.TotalCollected, manifest.CashDelta(), describe(p, "exchange cash taken"), p.Driver(), now)
	case parcel.GiveToCustomer:
		row, err = s.Debit(shop.TotalCollected, manifest.CashDelta(), describe(p, "exchange cash given"), p.Driver(), now)
	case parcel.NoCash:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []*shop.MoneyTransaction{row}, nil
}

func (l LedgerPoster) validate(p *parcel.Parcel, s *shop.Shop) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if !p.ShopID().IsEqual(s.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"shop",
			fmt.Errorf("parcel %s belongs to shop %s, not %s", p.TrackingNumber(), p.ShopID(), s.ID()),
		)
	}
	return nil
}

func describe(p *parcel.Parcel, what string) string {
	return fmt.Sprintf("%s: %s", p.TrackingNumber(), what)
}
