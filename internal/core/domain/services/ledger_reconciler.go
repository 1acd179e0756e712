package services

import (
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Discrepancy is one attribute whose materialized balance disagrees with the
// ledger.
type Discrepancy struct {
	Attribute  shop.Attribute
	Projected  kernel.Money
	Recomputed kernel.Money
}

// ReconciliationReport is the outcome of checking one shop.
type ReconciliationReport struct {
	ShopID        kernel.UUID
	Recomputed    shop.Balances
	Discrepancies []Discrepancy
	Repaired      bool
}

func (r ReconciliationReport) IsConsistent() bool {
	return len(r.Discrepancies) == 0
}

// LedgerReconciler recomputes shop balances from the transaction log: for
// every attribute, balance = Σ increases − Σ decreases. It backs both the
// consistency check and the repair tool.
type LedgerReconciler struct{}

func NewLedgerReconciler() LedgerReconciler {
	return LedgerReconciler{}
}

// Recompute folds rows into balances. A log whose decreases for an attribute
// exceed its increases is corrupt and fails with ErrValueIsOutOfRange.
func (LedgerReconciler) Recompute(shopID kernel.UUID, rows []*shop.MoneyTransaction) (shop.Balances, error) {
	totals := make(map[shop.Attribute]decimal.Decimal, len(shop.Attributes()))
	for _, row := range rows {
		if !row.ShopID().IsEqual(shopID) {
			return shop.Balances{}, errs.NewValueIsInvalidErrorWithCause(
				"money transaction",
				fmt.Errorf("%s belongs to shop %s", row.ID(), row.ShopID()),
			)
		}
		amount := row.Amount().Decimal()
		if row.ChangeType() == shop.Decrease {
			amount = amount.Neg()
		}
		totals[row.Attribute()] = totals[row.Attribute()].Add(amount)
	}

	balances := make(map[shop.Attribute]kernel.Money, len(shop.Attributes()))
	for _, attribute := range shop.Attributes() {
		m, err := kernel.NewMoney(totals[attribute])
		if err != nil {
			return shop.Balances{}, errs.NewValueIsOutOfRangeErrorWithCause(
				string(attribute), totals[attribute].StringFixed(2), 0, "unbounded", err,
			)
		}
		balances[attribute] = m
	}

	return shop.Balances{
		ToCollect:      balances[shop.ToCollect],
		TotalCollected: balances[shop.TotalCollected],
		Settled:        balances[shop.Settled],
		Revenue:        balances[shop.Revenue],
	}, nil
}

// Check compares the shop projection with its ledger without changing it.
func (r LedgerReconciler) Check(s *shop.Shop, rows []*shop.MoneyTransaction) (ReconciliationReport, error) {
	if err := s.Validate(); err != nil {
		return ReconciliationReport{}, err
	}

	recomputed, err := r.Recompute(s.ID(), rows)
	if err != nil {
		return ReconciliationReport{}, err
	}

	report := ReconciliationReport{ShopID: s.ID(), Recomputed: recomputed}
	expected := map[shop.Attribute]kernel.Money{
		shop.ToCollect:      recomputed.ToCollect,
		shop.TotalCollected: recomputed.TotalCollected,
		shop.Settled:        recomputed.Settled,
		shop.Revenue:        recomputed.Revenue,
	}
	for _, attribute := range shop.Attributes() {
		if projected := s.Balance(attribute); !projected.Equal(expected[attribute]) {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Attribute:  attribute,
				Projected:  projected,
				Recomputed: expected[attribute],
			})
		}
	}
	return report, nil
}

// Repair overwrites a drifted projection with the recomputed balances. The
// ledger itself is never modified.
func (r LedgerReconciler) Repair(s *shop.Shop, rows []*shop.MoneyTransaction, now time.Time) (ReconciliationReport, error) {
	report, err := r.Check(s, rows)
	if err != nil {
		return ReconciliationReport{}, err
	}
	if report.IsConsistent() {
		return report, nil
	}

	s.Reconcile(report.Recomputed, now)
	report.Repaired = true
	return report, nil
}
