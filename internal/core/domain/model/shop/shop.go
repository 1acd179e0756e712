package shop

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

const EventBalanceChanged = "shop.balance_changed"

const settlementReason = "settlement"

// Shop is the ledger aggregate. It holds the materialized balances of one
// shop and is the only writer of its MoneyTransaction rows: every balance
// change returns the row that records it.
//
// Invariants:
//   - no balance ever goes negative; a debit larger than the balance is
//     refused before anything changes
//   - for each attribute, balance == sum(increases) - sum(decreases) over
//     the rows produced for this shop
type Shop struct {
	id           kernel.UUID
	name         string
	shippingFees kernel.Money
	isApproved   bool

	balances map[Attribute]kernel.Money

	version int64

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

// NewShop registers a shop with zero balances. shippingFees is the fee the
// platform earns per delivered parcel.
func NewShop(id kernel.UUID, name string, shippingFees kernel.Money) (*Shop, error) {
	s := &Shop{
		shippingFees: shippingFees,
		balances:     zeroBalances(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Balances is the persisted projection of a shop's ledger.
type Balances struct {
	ToCollect      kernel.Money
	TotalCollected kernel.Money
	Settled        kernel.Money
	Revenue        kernel.Money
}

// RestoreShop rebuilds a shop read back from storage.
func RestoreShop(
	id kernel.UUID,
	name string,
	shippingFees kernel.Money,
	isApproved bool,
	balances Balances,
	version int64,
) (*Shop, error) {
	s, err := NewShop(id, name, shippingFees)
	if err != nil {
		return nil, err
	}
	s.isApproved = isApproved
	s.balances[ToCollect] = balances.ToCollect
	s.balances[TotalCollected] = balances.TotalCollected
	s.balances[Settled] = balances.Settled
	s.balances[Revenue] = balances.Revenue
	s.version = version
	return s, nil
}

func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}
	return s.guard.Validate(ErrShopIsNotConstructed)
}

func (s *Shop) ID() kernel.UUID            { return s.id }
func (s *Shop) Name() string               { return s.name }
func (s *Shop) ShippingFees() kernel.Money { return s.shippingFees }
func (s *Shop) IsApproved() bool           { return s.isApproved }
func (s *Shop) Version() int64             { return s.version }
func (s *Shop) SetVersion(version int64)   { s.version = version }

// Balance returns the current value of one attribute.
func (s *Shop) Balance(attribute Attribute) kernel.Money {
	if b, ok := s.balances[attribute]; ok {
		return b
	}
	return kernel.ZeroMoney()
}

func (s *Shop) Balances() Balances {
	return Balances{
		ToCollect:      s.Balance(ToCollect),
		TotalCollected: s.Balance(TotalCollected),
		Settled:        s.Balance(Settled),
		Revenue:        s.Balance(Revenue),
	}
}

func (s *Shop) Approve() {
	s.isApproved = true
}

// Credit increases attribute by amount and returns the ledger row.
// amount must be positive.
func (s *Shop) Credit(
	attribute Attribute,
	amount kernel.Money,
	reason string,
	driverID *kernel.UUID,
	now time.Time,
) (*MoneyTransaction, error) {
	if err := s.checkEntry(attribute, amount); err != nil {
		return nil, err
	}

	old := s.Balance(attribute)
	s.balances[attribute] = old.Add(amount)
	s.recordChange(attribute, old, now)
	return newMoneyTransaction(s.id, driverID, attribute, Increase, amount, reason, now), nil
}

// Debit decreases attribute by amount and returns the ledger row. It fails
// with ErrInsufficientBalance, leaving the shop untouched, when amount is
// larger than the current balance.
func (s *Shop) Debit(
	attribute Attribute,
	amount kernel.Money,
	reason string,
	driverID *kernel.UUID,
	now time.Time,
) (*MoneyTransaction, error) {
	if err := s.checkEntry(attribute, amount); err != nil {
		return nil, err
	}

	old := s.Balance(attribute)
	updated, err := old.Sub(amount)
	if err != nil {
		return nil, errs.NewRuleViolationErrorWithCause(
			errs.ErrInsufficientBalance,
			"shop",
			fmt.Sprintf("%s is %s, can not debit %s", attribute, old, amount),
			err,
		)
	}

	s.balances[attribute] = updated
	s.recordChange(attribute, old, now)
	return newMoneyTransaction(s.id, driverID, attribute, Decrease, amount, reason, now), nil
}

// Settle pays amount out to the shop: TotalCollected decreases and Settled
// increases by the same amount.
//
// It fails with ErrInvalidAmount when amount is not positive. When amount is
// larger than TotalCollected the error matches both ErrInsufficientBalance
// and ErrInvalidAmount. In both cases nothing changes.
func (s *Shop) Settle(amount kernel.Money, now time.Time) ([]*MoneyTransaction, error) {
	if !amount.IsPositive() {
		return nil, invalidAmount(amount)
	}

	available := s.Balance(TotalCollected)
	if amount.GreaterThan(available) {
		return nil, errs.NewRuleViolationErrorWithCause(
			errs.ErrInsufficientBalance,
			"shop",
			fmt.Sprintf("settlement of %s exceeds total collected %s", amount, available),
			errs.NewRuleViolationError(errs.ErrInvalidAmount, "amount", fmt.Sprintf("%s exceeds %s", amount, available)),
		)
	}

	reason := settlementReason
	if amount.LessThan(available) {
		reason = "partial settlement"
	}

	debit, err := s.Debit(TotalCollected, amount, reason, nil, now)
	if err != nil {
		return nil, err
	}
	credit, err := s.Credit(Settled, amount, reason, nil, now)
	if err != nil {
		return nil, err
	}
	return []*MoneyTransaction{debit, credit}, nil
}

// AdjustTotalCollected is the administrative correction of TotalCollected.
// reason is mandatory (ErrReasonRequired), amount must be positive
// (ErrInvalidAmount) and a decrease may not exceed the balance
// (ErrInsufficientBalance).
func (s *Shop) AdjustTotalCollected(
	amount kernel.Money,
	reason string,
	direction ChangeType,
	now time.Time,
) (*MoneyTransaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errs.NewRuleViolationError(errs.ErrReasonRequired, "shop", "adjustment needs a reason")
	}
	if !amount.IsPositive() {
		return nil, invalidAmount(amount)
	}

	switch direction {
	case Increase:
		return s.Credit(TotalCollected, amount, reason, nil, now)
	case Decrease:
		return s.Debit(TotalCollected, amount, reason, nil, now)
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not increase or decrease", direction))
}

// Reconcile overwrites the projection with balances recomputed from the
// ledger. It is the repair path of the reconciliation routine.
func (s *Shop) Reconcile(recomputed Balances, now time.Time) {
	values := map[Attribute]kernel.Money{
		ToCollect:      recomputed.ToCollect,
		TotalCollected: recomputed.TotalCollected,
		Settled:        recomputed.Settled,
		Revenue:        recomputed.Revenue,
	}
	for _, attribute := range Attributes() {
		old := s.Balance(attribute)
		if old.Equal(values[attribute]) {
			continue
		}
		s.balances[attribute] = values[attribute]
		s.recordChange(attribute, old, now)
	}
}

func (s *Shop) checkEntry(attribute Attribute, amount kernel.Money) error {
	if err := attribute.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return invalidAmount(amount)
	}
	return nil
}

func (s *Shop) recordChange(attribute Attribute, old kernel.Money, now time.Time) {
	s.Record(kernel.DomainEvent{
		Name:       EventBalanceChanged,
		SubjectID:  s.id,
		Attribute:  attribute.String(),
		OldValue:   old.String(),
		NewValue:   s.Balance(attribute).String(),
		OccurredAt: now,
	})
}

func invalidAmount(amount kernel.Money) error {
	return errs.NewRuleViolationError(errs.ErrInvalidAmount, "amount", fmt.Sprintf("%s is not positive", amount))
}

func zeroBalances() map[Attribute]kernel.Money {
	balances := make(map[Attribute]kernel.Money, len(Attributes()))
	for _, a := range Attributes() {
		balances[a] = kernel.ZeroMoney()
	}
	return balances
}

func (s *Shop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shop) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("shop name")
	}
	s.name = name
	return nil
}
