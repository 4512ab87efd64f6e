package order_test

import (
	"fmt"
	"testing"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate known statuses", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing,
			order.Ready, order.Delivered, order.Cancelled,
		} {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject unknown and out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(7), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, "unknown", status.String())
			})
		}
	})
}

func TestStatus_ParseStatus(t *testing.T) {
	t.Run("should round trip every persisted name", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing,
			order.Ready, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "Confirmed", "done"} {
			_, err := order.ParseStatus(name)

			require.Error(t, err, name)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	all := []order.Status{
		order.Unknown, order.Pending, order.Confirmed, order.Preparing,
		order.Ready, order.Delivered, order.Cancelled,
	}
	legal := map[order.Status]order.Status{
		order.Confirmed: order.Preparing,
		order.Preparing: order.Ready,
		order.Ready:     order.Delivered,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				want := legal[from] == to && to != order.Unknown
				assert.Equal(t, want, from.CanTransitionTo(to))
			})
		}
	}
}

func TestStatus_Next(t *testing.T) {
	t.Run("should walk the kitchen pipeline", func(t *testing.T) {
		status := order.Confirmed
		var path []order.Status
		for {
			next, ok := status.Next()
			if !ok {
				break
			}
			path = append(path, next)
			status = next
		}

		assert.Equal(t, []order.Status{order.Preparing, order.Ready, order.Delivered}, path)
	})

	t.Run("should have no next status for final and upstream statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Delivered, order.Cancelled, order.Unknown} {
			_, ok := status.Next()
			assert.False(t, ok, status.String())
		}
	})
}

func TestStatus_IsActive(t *testing.T) {
	assert.Equal(t, []order.Status{order.Confirmed, order.Preparing, order.Ready}, order.ActiveStatuses())

	for _, status := range order.ActiveStatuses() {
		assert.True(t, status.IsActive(), status.String())
	}
	for _, status := range []order.Status{order.Pending, order.Delivered, order.Cancelled, order.Unknown} {
		assert.False(t, status.IsActive(), status.String())
	}
}

func TestStatus_Predecessors(t *testing.T) {
	t.Run("should list the chain up to the status", func(t *testing.T) {
		assert.Equal(t, []order.Status{order.Confirmed}, order.Confirmed.Predecessors())
		assert.Equal(t, []order.Status{order.Confirmed, order.Preparing}, order.Preparing.Predecessors())
		assert.Equal(t,
			[]order.Status{order.Confirmed, order.Preparing, order.Ready, order.Delivered},
			order.Delivered.Predecessors(),
		)
	})

	t.Run("should not let a later status be overwritten", func(t *testing.T) {
		assert.NotContains(t, order.Preparing.Predecessors(), order.Ready)
		assert.Equal(t, []order.Status{order.Cancelled}, order.Cancelled.Predecessors())
	})
}

func TestItemStatus_Predecessors(t *testing.T) {
	assert.Equal(t, []order.ItemStatus{order.ItemPending, order.ItemPreparing}, order.ItemPreparing.Predecessors())
	assert.NotContains(t, order.ItemPreparing.Predecessors(), order.ItemReady)
	assert.Len(t, order.ItemServed.Predecessors(), 4)
	assert.Nil(t, order.ItemUnknown.Predecessors())
}

func TestItemStatus(t *testing.T) {
	t.Run("should only move one step forward", func(t *testing.T) {
		assert.True(t, order.ItemPending.CanTransitionTo(order.ItemPreparing))
		assert.True(t, order.ItemPreparing.CanTransitionTo(order.ItemReady))

		assert.False(t, order.ItemPending.CanTransitionTo(order.ItemReady))
		assert.False(t, order.ItemReady.CanTransitionTo(order.ItemPreparing))
		assert.False(t, order.ItemPreparing.CanTransitionTo(order.ItemPending))
		assert.False(t, order.ItemReady.CanTransitionTo(order.ItemServed))
		assert.False(t, order.ItemServed.CanTransitionTo(order.ItemReady))
		assert.False(t, order.ItemUnknown.CanTransitionTo(order.ItemPending))
	})

	t.Run("should report ready and served as done", func(t *testing.T) {
		assert.False(t, order.ItemPending.IsDone())
		assert.False(t, order.ItemPreparing.IsDone())
		assert.True(t, order.ItemReady.IsDone())
		assert.True(t, order.ItemServed.IsDone())
	})

	t.Run("should parse persisted names", func(t *testing.T) {
		for _, status := range []order.ItemStatus{order.ItemPending, order.ItemPreparing, order.ItemReady, order.ItemServed} {
			parsed, err := order.ParseItemStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}

		_, err := order.ParseItemStatus("cooking")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		require.Error(t, order.ItemStatus(9).Validate())
		assert.Equal(t, "unknown", order.ItemStatus(9).String())
	})
}

func TestConsumptionMode(t *testing.T) {
	mode, err := order.ParseConsumptionMode("dine-in")
	require.NoError(t, err)
	assert.Equal(t, order.DineIn, mode)

	mode, err = order.ParseConsumptionMode("takeaway")
	require.NoError(t, err)
	assert.Equal(t, order.Takeaway, mode)

	_, err = order.ParseConsumptionMode("delivery")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.Error(t, order.ConsumptionMode(0).Validate())
	assert.Equal(t, "unknown", order.ConsumptionMode(0).String())
}
