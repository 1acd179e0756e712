package services_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T, approved, available bool) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.NewUUID(), "Sam", "north", approved, available, 0, 0, 1)
	require.NoError(t, err)
	return d
}

func TestDriverDispatcher_Assign(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()

	t.Run("should bind and count once", func(t *testing.T) {
		s := newShop(t, "0")
		p := newParcel(t, s, "10")
		_, err := p.Schedule(kernel.NewUUID(), now)
		require.NoError(t, err)
		advance(t, p, s, kernel.RoleSystem)
		d := newDriver(t, true, true)

		changed, err := dispatcher.Assign(p, d, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, p.HasDriver(d.ID()))
		assert.Equal(t, 1, d.AssignedToday())

		changed, err = dispatcher.Assign(p, d, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, d.TotalAssigned())
	})

	t.Run("should refuse unavailable drivers", func(t *testing.T) {
		s := newShop(t, "0")
		p := newParcel(t, s, "10")

		for _, d := range []*driver.Driver{newDriver(t, false, true), newDriver(t, true, false)} {
			_, err := dispatcher.Assign(p, d, now)

			require.ErrorIs(t, err, errs.ErrDriverUnavailable)
			assert.Nil(t, p.Driver())
		}
	})

	t.Run("should refuse parcels outside the dispatch window", func(t *testing.T) {
		s := newShop(t, "0")
		p := newParcel(t, s, "10")
		d := newDriver(t, true, true)

		_, err := dispatcher.Assign(p, d, now)

		require.ErrorIs(t, err, errs.ErrPackageNotAssignable)
		assert.Zero(t, d.AssignedToday())
	})
}

func TestDriverDispatcher_AssignToPickup(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	pk, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), time.Now(), "dock 3", []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	require.ErrorIs(t, dispatcher.AssignToPickup(pk, newDriver(t, true, false)), errs.ErrDriverUnavailable)

	d := newDriver(t, true, true)
	require.NoError(t, dispatcher.AssignToPickup(pk, d))
	assert.Equal(t, d.ID(), *pk.Driver())

	require.NoError(t, pk.MarkPickedUp(time.Now()))
	require.ErrorIs(t, dispatcher.AssignToPickup(pk, d), errs.ErrPreconditionNotMet)
}
