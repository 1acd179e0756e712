package driver_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	t.Run("should be available but not approved", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Sam", " Zone 4 ")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "Zone 4", d.WorkingArea())
		assert.True(t, d.IsAvailable())
		assert.False(t, d.IsApproved())
		assert.Zero(t, d.AssignedToday())
	})

	t.Run("should require id and name", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.UUID{}, "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "driver name")
	})
}

func TestDriver_EnsureDispatchable(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "Sam", "")
	require.NoError(t, err)

	require.ErrorIs(t, d.EnsureDispatchable(), errs.ErrDriverUnavailable, "not approved yet")

	d.Approve()
	require.NoError(t, d.EnsureDispatchable())

	d.SetAvailability(false, time.Now())
	require.ErrorIs(t, d.EnsureDispatchable(), errs.ErrDriverUnavailable)

	events := d.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, driver.EventAvailabilityChanged, events[0].Name)
	assert.Equal(t, "false", events[0].NewValue)

	d.SetAvailability(false, time.Now())
	assert.Empty(t, d.PullEvents(), "unchanged availability records nothing")
}

func TestDriver_Counters(t *testing.T) {
	d, err := driver.RestoreDriver(kernel.NewUUID(), "Sam", "", true, true, 2, 10, 4)
	require.NoError(t, err)

	d.RecordAssignment()
	assert.Equal(t, 3, d.AssignedToday())
	assert.Equal(t, 11, d.TotalAssigned())

	d.ResetDailyCounter()
	assert.Zero(t, d.AssignedToday())
	assert.Equal(t, 11, d.TotalAssigned())
	assert.Equal(t, int64(4), d.Version())
}

func TestRestoreDriver_InvalidCounters(t *testing.T) {
	_, err := driver.RestoreDriver(kernel.NewUUID(), "Sam", "", true, true, 5, 1, 0)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
