// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. LedgerReconciliationJob - recomputes every shop's balances from its
//     ledger and logs drift (RECONCILE_SCHEDULE, hourly by default)
//  2. DriverCounterResetJob - zeroes the assigned-today counter of every
//     driver (DRIVER_COUNTER_RESET_SCHEDULE, midnight by default)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconciliationJob, counterResetJob)
//	if err := jobManager.StartAll(); err != nil {
//		logger.WithError(err).Fatal("Failed to start jobs")
//	}
//	defer jobManager.StopAll()
//
// Schedules use the standard five-field cron syntax and descriptors such as
// "@every 1h".
//
// # Error Handling
//
// A failed run is logged and retried at the next tick. The reconciliation
// job only reports; repairing a shop goes through the reconcile endpoint.
package jobs
