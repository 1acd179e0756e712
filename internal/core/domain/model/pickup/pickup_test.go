package pickup_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduled = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

func newPickup(t *testing.T) *pickup.Pickup {
	t.Helper()
	p, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), scheduled, "12 Harbor Rd",
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()})
	require.NoError(t, err)
	return p
}

func TestNewPickup(t *testing.T) {
	t.Run("should start scheduled without a driver", func(t *testing.T) {
		p := newPickup(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, pickup.Scheduled, p.Status())
		assert.Nil(t, p.Driver())
		assert.Nil(t, p.ActualPickupTime())
		assert.Len(t, p.ParcelIDs(), 2)
	})

	t.Run("should require parcels, address and time", func(t *testing.T) {
		_, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), time.Time{}, " ", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "parcel ids")
		assert.Contains(t, err.Error(), "pickup address")
		assert.Contains(t, err.Error(), "scheduled time")
	})

	t.Run("should refuse the same parcel twice", func(t *testing.T) {
		id := kernel.NewUUID()

		_, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), scheduled, "here", []kernel.UUID{id, id})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPickup_Lifecycle(t *testing.T) {
	p := newPickup(t)
	driverID := kernel.NewUUID()

	require.NoError(t, p.AssignDriver(driverID))
	require.NotNil(t, p.Driver())
	assert.Equal(t, driverID, *p.Driver())
	require.NoError(t, p.EnsureDeletable())

	require.ErrorIs(t, p.MarkInStorage(scheduled), errs.ErrPreconditionNotMet, "not picked up yet")

	collected := scheduled.Add(20 * time.Minute)
	require.NoError(t, p.MarkPickedUp(collected))
	assert.Equal(t, pickup.PickedUp, p.Status())
	assert.Equal(t, collected, *p.ActualPickupTime())

	require.ErrorIs(t, p.MarkPickedUp(collected), errs.ErrPreconditionNotMet)
	require.ErrorIs(t, p.AssignDriver(kernel.NewUUID()), errs.ErrPreconditionNotMet)
	require.ErrorIs(t, p.EnsureDeletable(), errs.ErrPreconditionNotMet)

	require.NoError(t, p.MarkInStorage(collected.Add(time.Hour)))
	assert.Equal(t, pickup.InStorage, p.Status())

	events := p.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "scheduled", events[0].OldValue)
	assert.Equal(t, "in_storage", events[1].NewValue)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []pickup.Status{pickup.Scheduled, pickup.PickedUp, pickup.InStorage} {
		parsed, err := pickup.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := pickup.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestorePickup(t *testing.T) {
	driverID := kernel.NewUUID()

	p, err := pickup.RestorePickup(kernel.NewUUID(), kernel.NewUUID(), scheduled, "here",
		pickup.PickedUp, &driverID, nil, &scheduled, 2)

	require.NoError(t, err)
	assert.Equal(t, pickup.PickedUp, p.Status())
	assert.Empty(t, p.ParcelIDs())
	assert.Equal(t, int64(2), p.Version())

	_, err = pickup.RestorePickup(kernel.NewUUID(), kernel.NewUUID(), scheduled, "here",
		pickup.Unknown, nil, nil, nil, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
