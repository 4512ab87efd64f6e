package services_test

import (
	"testing"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyElapsed(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    services.Severity
	}{
		{0, services.SeverityNormal},
		{4*time.Minute + 59*time.Second, services.SeverityNormal},
		{5 * time.Minute, services.SeverityNormal},
		{5*time.Minute + time.Second, services.SeverityCaution},
		{10 * time.Minute, services.SeverityCaution},
		{10*time.Minute + time.Second, services.SeverityWarning},
		{15 * time.Minute, services.SeverityWarning},
		{15*time.Minute + time.Nanosecond, services.SeverityCritical},
		{3 * time.Hour, services.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, services.ClassifyElapsed(tt.elapsed))
		})
	}
}

func TestOrderSeverity(t *testing.T) {
	submitted := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	preparing := submitted.Add(9 * time.Minute)

	build := func(t *testing.T, status order.Status, preparingAt *time.Time) *order.Order {
		o, err := order.RestoreOrder(order.OrderState{
			ID:          kernel.NewUUID(),
			Code:        "B-2",
			Mode:        order.Takeaway,
			Status:      status,
			SubmittedAt: submitted,
			PreparingAt: preparingAt,
			Items: []order.ItemState{{
				ID: kernel.NewUUID(), Name: "Fries", Quantity: 2, Status: order.ItemPreparing, PreparingAt: preparingAt,
			}},
		})
		require.NoError(t, err)
		return o
	}

	t.Run("should count queued orders from submission", func(t *testing.T) {
		o := build(t, order.Confirmed, nil)

		assert.Equal(t, submitted, services.OrderReference(o))
		assert.Equal(t, services.SeverityWarning, services.OrderSeverity(o, submitted.Add(11*time.Minute)))
	})

	t.Run("should count preparing orders from preparing time", func(t *testing.T) {
		o := build(t, order.Preparing, &preparing)

		assert.Equal(t, preparing, services.OrderReference(o))
		assert.Equal(t, services.SeverityNormal, services.OrderSeverity(o, preparing.Add(2*time.Minute)))

		it := o.Items()[0]
		assert.Equal(t, services.SeverityCaution, services.ItemSeverity(o, it, preparing.Add(6*time.Minute)))
	})

	t.Run("should resolve ready orders regardless of age", func(t *testing.T) {
		o := build(t, order.Ready, &preparing)

		assert.Equal(t, services.SeverityResolved, services.OrderSeverity(o, preparing.Add(2*time.Hour)))
		assert.Equal(t, services.SeverityResolved, services.ItemSeverity(o, o.Items()[0], preparing.Add(2*time.Hour)))
	})

	t.Run("should clamp negative elapsed time", func(t *testing.T) {
		assert.Zero(t, services.Elapsed(submitted, submitted.Add(-time.Minute)))
	})
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0m", services.FormatElapsed(59*time.Second))
	assert.Equal(t, "7m", services.FormatElapsed(7*time.Minute+40*time.Second))
	assert.Equal(t, "59m", services.FormatElapsed(59*time.Minute))
	assert.Equal(t, "1h 0m", services.FormatElapsed(time.Hour))
	assert.Equal(t, "2h 5m", services.FormatElapsed(2*time.Hour+5*time.Minute))

	assert.Equal(t, "7:04", services.FormatElapsedFine(7*time.Minute+4*time.Second))
	assert.Equal(t, "0:00", services.FormatElapsedFine(0))
}

func TestSeverity_String(t *testing.T) {
	text, err := services.SeverityCritical.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "critical", string(text))
	assert.Equal(t, "unknown", services.Severity(42).String())
}
