package commands

import (
	"context"

	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// ReconcileShopCommandHandler recomputes a shop's balances from its ledger
// under the shop lock and reports every attribute that drifted.
type ReconcileShopCommandHandler struct {
	uowFactory LedgerUoWFactory
	locker     ports.Locker
	reconciler services.LedgerReconciler
}

func NewReconcileShopCommandHandler(uowFactory LedgerUoWFactory, locker ports.Locker) ReconcileShopCommandHandler {
	return ReconcileShopCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		reconciler: services.NewLedgerReconciler(),
	}
}

func (h ReconcileShopCommandHandler) Handle(
	ctx context.Context,
	command ReconcileShopCommand,
) (services.ReconciliationReport, error) {
	if err := command.Validate(); err != nil {
		return services.ReconciliationReport{}, err
	}

	var report services.ReconciliationReport
	err := runShopLedger(ctx, h.uowFactory, h.locker, command.ShopID(),
		func() bool { return report.Repaired },
		func(ctx context.Context, uow LedgerUoW, s *shop.Shop) ([]*shop.MoneyTransaction, error) {
			rows, err := uow.MoneyTransactionRepository().ListByShop(ctx, s.ID())
			if err != nil {
				return nil, err
			}
			if command.Repair() {
				report, err = h.reconciler.Repair(s, rows, now())
			} else {
				report, err = h.reconciler.Check(s, rows)
			}
			return nil, err
		})
	if err != nil {
		return services.ReconciliationReport{}, err
	}

	return report, nil
}
