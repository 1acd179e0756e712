package kernel

import (
	"fmt"

	"lastmile/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyPlaces matches the DECIMAL(10,2) columns money is persisted in.
const moneyPlaces = 2

// Money is a non-negative amount in the shop's currency, rounded to cents.
// Arithmetic never produces a negative value: Sub fails instead.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds d to cents and rejects negative values.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("money", d.StringFixed(moneyPlaces), 0, "unbounded")
	}
	return Money{amount: d.Round(moneyPlaces)}, nil
}

// MoneyFromString parses a decimal string such as "120.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(d)
}

// MoneyFromCents is a convenience for whole-cent amounts.
func MoneyFromCents(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -moneyPlaces))
}

// ClampMoney bounds an arbitrary decimal to [0, upper].
func ClampMoney(d decimal.Decimal, upper Money) Money {
	if d.IsNegative() {
		return ZeroMoney()
	}
	m := Money{amount: d.Round(moneyPlaces)}
	return m.Min(upper)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. It fails with ErrValueIsOutOfRange when other > m.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount.GreaterThan(m.amount) {
		return Money{}, errs.NewValueIsOutOfRangeError("money", other.String(), 0, m.String())
	}
	return Money{amount: m.amount.Sub(other.amount)}, nil
}

func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal exposes the amount for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two places, e.g. "40.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyPlaces)
}
