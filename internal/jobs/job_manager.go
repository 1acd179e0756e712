package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliation *LedgerReconciliationJob
	counterReset   *DriverCounterResetJob
}

func NewJobManager(reconciliation *LedgerReconciliationJob, counterReset *DriverCounterResetJob) *JobManager {
	return &JobManager{
		reconciliation: reconciliation,
		counterReset:   counterReset,
	}
}

// StartAll starts all scheduled jobs. When one fails to start, the jobs
// already started are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliation.Start(); err != nil {
		return fmt.Errorf("failed to start ledger reconciliation job: %w", err)
	}

	if err := jm.counterReset.Start(); err != nil {
		jm.reconciliation.Stop()
		return fmt.Errorf("failed to start driver counter reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.counterReset.Stop()
	jm.reconciliation.Stop()
}
