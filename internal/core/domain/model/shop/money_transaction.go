package shop

import (
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Attribute names the shop balance a ledger entry moves.
type Attribute string

const (
	ToCollect      Attribute = "ToCollect"
	TotalCollected Attribute = "TotalCollected"
	Settled        Attribute = "Settled"
	Revenue        Attribute = "Revenue"
)

// Attributes lists every ledger attribute.
func Attributes() []Attribute {
	return []Attribute{ToCollect, TotalCollected, Settled, Revenue}
}

func ParseAttribute(s string) (Attribute, error) {
	for _, a := range Attributes() {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("attribute", fmt.Errorf("%q is not a ledger attribute", s))
}

func (a Attribute) Validate() error {
	_, err := ParseAttribute(string(a))
	return err
}

func (a Attribute) String() string {
	return string(a)
}

// ChangeType is the sign of a ledger entry.
type ChangeType string

const (
	Increase ChangeType = "increase"
	Decrease ChangeType = "decrease"
)

func ParseChangeType(s string) (ChangeType, error) {
	switch ChangeType(strings.ToLower(strings.TrimSpace(s))) {
	case Increase:
		return Increase, nil
	case Decrease:
		return Decrease, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("change type", fmt.Errorf("%q is not increase or decrease", s))
}

// MoneyTransaction is one immutable row of a shop's ledger. The shop's
// balances are a projection of these rows.
type MoneyTransaction struct {
	id          kernel.UUID
	shopID      kernel.UUID
	driverID    *kernel.UUID
	attribute   Attribute
	changeType  ChangeType
	amount      kernel.Money
	description string
	createdAt   time.Time
}

func newMoneyTransaction(
	shopID kernel.UUID,
	driverID *kernel.UUID,
	attribute Attribute,
	changeType ChangeType,
	amount kernel.Money,
	description string,
	createdAt time.Time,
) *MoneyTransaction {
	var driver *kernel.UUID
	if driverID != nil {
		d := *driverID
		driver = &d
	}
	return &MoneyTransaction{
		id:          kernel.NewUUID(),
		shopID:      shopID,
		driverID:    driver,
		attribute:   attribute,
		changeType:  changeType,
		amount:      amount,
		description: description,
		createdAt:   createdAt,
	}
}

// RestoreMoneyTransaction rebuilds a ledger row read back from storage.
func RestoreMoneyTransaction(
	id, shopID kernel.UUID,
	driverID *kernel.UUID,
	attribute Attribute,
	changeType ChangeType,
	amount kernel.Money,
	description string,
	createdAt time.Time,
) (*MoneyTransaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := attribute.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseChangeType(string(changeType)); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", amount))
	}

	tx := newMoneyTransaction(shopID, driverID, attribute, changeType, amount, description, createdAt)
	tx.id = id
	return tx, nil
}

func (t *MoneyTransaction) ID() kernel.UUID        { return t.id }
func (t *MoneyTransaction) ShopID() kernel.UUID    { return t.shopID }
func (t *MoneyTransaction) Attribute() Attribute   { return t.attribute }
func (t *MoneyTransaction) ChangeType() ChangeType { return t.changeType }
func (t *MoneyTransaction) Amount() kernel.Money   { return t.amount }
func (t *MoneyTransaction) Description() string    { return t.description }
func (t *MoneyTransaction) CreatedAt() time.Time   { return t.createdAt }

func (t *MoneyTransaction) DriverID() *kernel.UUID {
	if t.driverID == nil {
		return nil
	}
	d := *t.driverID
	return &d
}
