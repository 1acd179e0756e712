package jobs

import (
	"context"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LedgerReconciliationJob periodically recomputes every shop's balances from
// its ledger and logs the attributes that drifted. It never repairs: fixing
// a projection is an explicit administrative action.
type LedgerReconciliationJob struct {
	shops    commands.LedgerUoWFactory
	handler  commands.ReconcileShopCommandHandler
	schedule string
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

func NewLedgerReconciliationJob(
	shops commands.LedgerUoWFactory,
	handler commands.ReconcileShopCommandHandler,
	schedule string,
	logger logrus.FieldLogger,
) *LedgerReconciliationJob {
	return &LedgerReconciliationJob{
		shops:    shops,
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.WithField("component", "ledger_reconciliation_job"),
	}
}

func (j *LedgerReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.WithError(err).Error("Ledger reconciliation failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Ledger reconciliation job started")
	return nil
}

func (j *LedgerReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Ledger reconciliation job stopped")
}

// Run checks every shop once and returns how many were inconsistent. A shop
// that can not be checked is logged and skipped.
func (j *LedgerReconciliationJob) Run(ctx context.Context) (int, error) {
	shops, err := j.shops.Create().ShopRepository().List(ctx)
	if err != nil {
		return 0, err
	}

	inconsistent := 0
	for _, s := range shops {
		log := j.logger.WithField("shop_id", s.ID().String())

		cmd, err := commands.NewReconcileShopCommand(s.ID(), false)
		if err != nil {
			return inconsistent, err
		}
		report, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			log.WithError(err).Warn("Shop could not be reconciled")
			continue
		}
		if report.IsConsistent() {
			continue
		}

		inconsistent++
		for _, d := range report.Discrepancies {
			log.WithFields(logrus.Fields{
				"attribute":  d.Attribute.String(),
				"projected":  d.Projected.String(),
				"recomputed": d.Recomputed.String(),
			}).Warn("Shop balance drifted from its ledger")
		}
	}

	return inconsistent, nil
}
