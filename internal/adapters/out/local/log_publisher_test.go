package local

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LogPublisher_WritesOneEntryPerEvent(t *testing.T) {
	logger, hook := test.NewNullLogger()
	publisher := NewLogPublisher(logger)

	id := kernel.NewUUID()
	err := publisher.Publish(t.Context(),
		kernel.DomainEvent{Name: "parcel.status_changed", SubjectID: id, Attribute: "status", OldValue: "pending", NewValue: "assigned", OccurredAt: time.Now()},
		kernel.DomainEvent{Name: "shop.balance_changed", SubjectID: id, Attribute: "Revenue", OldValue: "0.00", NewValue: "10.00", OccurredAt: time.Now()},
	)
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "parcel.status_changed", entries[0].Data["event"])
	assert.Equal(t, "events", entries[1].Data["component"])
	assert.Equal(t, "10.00", entries[1].Data["new_value"])
}
