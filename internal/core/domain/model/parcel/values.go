package parcel

import (
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// ItemLine is one row of the parcel content.
type ItemLine struct {
	description string
	quantity    int
}

func NewItemLine(description string, quantity int) (ItemLine, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ItemLine{}, errs.NewValueIsRequiredError("item description")
	}
	if quantity <= 0 {
		return ItemLine{}, errs.NewValueIsInvalidErrorWithCause(
			"item quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return ItemLine{description: description, quantity: quantity}, nil
}

func (l ItemLine) Description() string { return l.description }
func (l ItemLine) Quantity() int       { return l.quantity }

// DeliveredLine is what the driver reports for one item line of a partial
// delivery. LineIndex refers to the parcel's item lines.
type DeliveredLine struct {
	LineIndex int
	Quantity  int
}

// Note is an entry of the append-only note history.
type Note struct {
	text       string
	authorRole kernel.Role
	createdAt  time.Time
}

func NewNote(text string, authorRole kernel.Role, createdAt time.Time) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, errs.NewValueIsRequiredError("note text")
	}
	if err := authorRole.Validate(); err != nil {
		return Note{}, err
	}
	return Note{text: text, authorRole: authorRole, createdAt: createdAt}, nil
}

func (n Note) Text() string            { return n.text }
func (n Note) AuthorRole() kernel.Role { return n.authorRole }
func (n Note) CreatedAt() time.Time    { return n.createdAt }

// PaymentMethod tags how a rejecting customer paid the shipping fee.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentWallet PaymentMethod = "WALLET"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not CASH, CARD or WALLET", string(m)))
	}
}

// CashDirection says which way the exchange cash delta flows.
type CashDirection int

const (
	NoCash CashDirection = iota
	TakeFromCustomer
	GiveToCustomer
)

func (d CashDirection) String() string {
	switch d {
	case TakeFromCustomer:
		return "take"
	case GiveToCustomer:
		return "give"
	case NoCash:
		return "none"
	}
	return "none"
}

func ParseCashDirection(s string) (CashDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoCash, nil
	case "take":
		return TakeFromCustomer, nil
	case "give":
		return GiveToCustomer, nil
	}
	return NoCash, errs.NewValueIsInvalidErrorWithCause("cash direction", fmt.Errorf("%q is not take, give or none", s))
}

// ExchangeManifest describes what the driver takes from and gives to the
// customer of an exchange parcel, plus the cash that changes hands.
type ExchangeManifest struct {
	take      []ItemLine
	give      []ItemLine
	cashDelta kernel.Money
	direction CashDirection
}

func NewExchangeManifest(take, give []ItemLine, cashDelta kernel.Money, direction CashDirection) (ExchangeManifest, error) {
	if len(take) == 0 && len(give) == 0 {
		return ExchangeManifest{}, errs.NewValueIsRequiredError("exchange items")
	}
	if direction == NoCash && cashDelta.IsPositive() {
		return ExchangeManifest{}, errs.NewValueIsInvalidErrorWithCause(
			"cash delta",
			fmt.Errorf("%s has no direction", cashDelta),
		)
	}
	if direction != NoCash && !cashDelta.IsPositive() {
		return ExchangeManifest{}, errs.NewValueIsInvalidErrorWithCause(
			"cash delta",
			fmt.Errorf("direction %s needs a positive amount", direction),
		)
	}
	return ExchangeManifest{
		take:      append([]ItemLine(nil), take...),
		give:      append([]ItemLine(nil), give...),
		cashDelta: cashDelta,
		direction: direction,
	}, nil
}

func (m ExchangeManifest) Take() []ItemLine             { return append([]ItemLine(nil), m.take...) }
func (m ExchangeManifest) Give() []ItemLine             { return append([]ItemLine(nil), m.give...) }
func (m ExchangeManifest) CashDelta() kernel.Money      { return m.cashDelta }
func (m ExchangeManifest) CashDirection() CashDirection { return m.direction }

// CODState tracks whether the parcel COD is booked into the shop's ToCollect
// balance. A parcel books once and releases once.
type CODState int

const (
	CODNotBooked CODState = iota
	CODBooked
	CODReleased
)
