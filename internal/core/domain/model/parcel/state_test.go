package parcel_test

import (
	"fmt"
	"testing"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, status := range parcel.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := parcel.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("should reject unknown identifiers", func(t *testing.T) {
		_, err := parcel.ParseStatus("lost")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.ErrorIs(t, parcel.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, parcel.Status(99).Validate(), errs.ErrValueIsInvalid)
	for _, status := range parcel.AllStatuses() {
		require.NoError(t, status.Validate())
	}
}

func TestNewState(t *testing.T) {
	t.Run("should pair every status with its own flow", func(t *testing.T) {
		for _, status := range parcel.AllStatuses() {
			state, err := parcel.NewState(status.Flow(), status)

			require.NoError(t, err)
			assert.Equal(t, status, state.Status())
			assert.False(t, state.IsZero())
		}
	})

	t.Run("should refuse a status outside its flow", func(t *testing.T) {
		_, err := parcel.NewState(parcel.RejectFlow, parcel.Assigned)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should refuse unknown status", func(t *testing.T) {
		_, err := parcel.NewState(parcel.UnknownFlow, parcel.Unknown)

		require.Error(t, err)
	})
}

func TestState_Next(t *testing.T) {
	testCases := []struct {
		from parcel.Status
		to   parcel.Status
	}{
		{parcel.AwaitingSchedule, parcel.ScheduledForPickup},
		{parcel.ScheduledForPickup, parcel.Pending},
		{parcel.Pending, parcel.Assigned},
		{parcel.Assigned, parcel.PickedUp},
		{parcel.PickedUp, parcel.InTransit},
		{parcel.InTransit, parcel.Delivered},
		{parcel.Rejected, parcel.RejectedAwaitingReturn},
		{parcel.RejectedAwaitingReturn, parcel.RejectedReturned},
		{parcel.CancelledAwaitingReturn, parcel.CancelledReturned},
		{parcel.ExchangeAwaitingSchedule, parcel.ExchangeAwaitingPickup},
		{parcel.ExchangeAwaitingPickup, parcel.ExchangeInTransit},
		{parcel.ExchangeInTransit, parcel.ExchangeAwaitingReturn},
		{parcel.ExchangeAwaitingReturn, parcel.ExchangeReturned},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
			next, err := parcel.StateOf(tc.from).Next()

			require.NoError(t, err)
			assert.Equal(t, parcel.StateOf(tc.to), next)
		})
	}

	terminal := []parcel.Status{
		parcel.Delivered,
		parcel.DeliveredAwaitingReturn,
		parcel.RejectedReturned,
		parcel.Cancelled,
		parcel.CancelledReturned,
		parcel.ExchangeReturned,
		parcel.ExchangeCancelled,
	}
	for _, status := range terminal {
		t.Run(fmt.Sprintf("%s is terminal", status), func(t *testing.T) {
			state := parcel.StateOf(status)

			_, err := state.Next()

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.True(t, state.IsTerminal())
		})
	}

	t.Run("should fail for the zero state", func(t *testing.T) {
		_, err := parcel.State{}.Next()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestState_NextNeverLeavesFlow(t *testing.T) {
	for _, status := range parcel.AllStatuses() {
		state := parcel.StateOf(status)
		next, err := state.Next()
		if err != nil {
			continue
		}
		assert.Equal(t, state.Flow(), next.Flow(), "%s moved to %s", state, next)
	}
}

func TestCanReach(t *testing.T) {
	t.Run("should reach every successor and nothing backwards", func(t *testing.T) {
		for _, status := range parcel.AllStatuses() {
			state := parcel.StateOf(status)
			next, err := state.Next()
			if err != nil {
				continue
			}

			assert.True(t, parcel.CanReach(state, next), "%s should reach %s", state, next)
			assert.False(t, parcel.CanReach(next, state), "%s should not reach %s", next, state)
		}
	})

	t.Run("should enter side flows only from their entry points", func(t *testing.T) {
		assert.True(t, parcel.CanReach(parcel.StateOf(parcel.Pending), parcel.StateOf(parcel.CancelledReturned)))
		assert.True(t, parcel.CanReach(parcel.StateOf(parcel.InTransit), parcel.StateOf(parcel.DeliveredAwaitingReturn)))
		assert.True(t, parcel.CanReach(parcel.StateOf(parcel.AwaitingSchedule), parcel.StateOf(parcel.RejectedReturned)))
		assert.False(t, parcel.CanReach(parcel.StateOf(parcel.PickedUp), parcel.StateOf(parcel.CancelledAwaitingReturn)))
		assert.False(t, parcel.CanReach(parcel.StateOf(parcel.Delivered), parcel.StateOf(parcel.Rejected)))
		assert.False(t, parcel.CanReach(parcel.StateOf(parcel.ExchangeInTransit), parcel.StateOf(parcel.ExchangeCancelled)))
		assert.False(t, parcel.CanReach(parcel.StateOf(parcel.Pending), parcel.StateOf(parcel.ExchangeReturned)))
	})

	t.Run("should reach itself", func(t *testing.T) {
		state := parcel.StateOf(parcel.Assigned)
		assert.True(t, parcel.CanReach(state, state))
	})
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, parcel.Assigned.RequiresDriver())
	assert.True(t, parcel.Delivered.RequiresDriver())
	assert.False(t, parcel.Pending.RequiresDriver())
	assert.False(t, parcel.ExchangeInTransit.RequiresDriver())

	assert.True(t, parcel.InTransit.IsAssignable())
	assert.True(t, parcel.ExchangeInTransit.IsAssignable())
	assert.False(t, parcel.Delivered.IsAssignable())
	assert.False(t, parcel.AwaitingSchedule.IsAssignable())

	assert.True(t, parcel.AwaitingSchedule.IsPrePickup())
	assert.True(t, parcel.ExchangeAwaitingSchedule.IsPrePickup())
	assert.True(t, parcel.ScheduledForPickup.IsScheduled())
	assert.True(t, parcel.ExchangeAwaitingPickup.IsScheduled())

	for _, status := range parcel.ActiveStatuses() {
		assert.False(t, parcel.StateOf(status).IsTerminal(), "%s is active but terminal", status)
	}
}
