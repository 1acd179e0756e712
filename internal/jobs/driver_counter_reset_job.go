package jobs

import (
	"context"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DriverCounterResetJob zeroes the assigned-today counter of every driver,
// normally once a day at midnight.
type DriverCounterResetJob struct {
	handler  commands.ResetDriverDailyCountersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

func NewDriverCounterResetJob(
	handler commands.ResetDriverDailyCountersCommandHandler,
	schedule string,
	logger logrus.FieldLogger,
) *DriverCounterResetJob {
	return &DriverCounterResetJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.WithField("component", "driver_counter_reset_job"),
	}
}

func (j *DriverCounterResetJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		reset, err := j.handler.Handle(ctx, commands.NewResetDriverDailyCountersCommand())
		if err != nil {
			j.logger.WithError(err).WithField("reset", reset).Error("Driver counter reset failed")
			return
		}
		j.logger.WithField("reset", reset).Info("Driver counters reset")
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Driver counter reset job started")
	return nil
}

func (j *DriverCounterResetJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Driver counter reset job stopped")
}
