package local

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/sirupsen/logrus"
)

// LogPublisher writes every domain event as one structured log line.
type LogPublisher struct {
	logger logrus.FieldLogger
}

func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{logger: logger.WithField("component", "events")}
}

func (p *LogPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		p.logger.WithFields(logrus.Fields{
			"event":       e.Name,
			"subject_id":  e.SubjectID.String(),
			"attribute":   e.Attribute,
			"old_value":   e.OldValue,
			"new_value":   e.NewValue,
			"occurred_at": e.OccurredAt,
		}).Info("domain event")
	}
	return nil
}
