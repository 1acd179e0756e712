package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

// eventMessage is the wire form of a domain event on the events channel.
type eventMessage struct {
	Name       string    `json:"name"`
	SubjectID  string    `json:"subjectId"`
	Attribute  string    `json:"attribute"`
	OldValue   string    `json:"oldValue"`
	NewValue   string    `json:"newValue"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements ports.EventPublisher with PUBLISH on one channel.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Publish sends every event and reports all failures joined. Events after a
// failed one are still sent.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errList []error
	for _, e := range events {
		data, err := json.Marshal(eventMessage{
			Name:       e.Name,
			SubjectID:  e.SubjectID.String(),
			Attribute:  e.Attribute,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			OccurredAt: e.OccurredAt,
		})
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
