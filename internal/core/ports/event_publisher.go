package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// EventPublisher fans committed domain events out to interested parties.
// Publishing happens after the transaction, so a failure is reported but
// never undoes the business change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
