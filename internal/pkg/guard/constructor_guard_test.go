package guard_test

import (
	"errors"
	"testing"

	"kitchen/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("ticket not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a small value
// object, the way commands and queries use it.
func TestConstructorGuardUsageExample(t *testing.T) {
	type station struct {
		name  string
		guard guard.ConstructorGuard
	}

	errStationNotConstructed := errors.New("station must be created via newStation")

	newStation := func(name string) (station, error) {
		if name == "" {
			return station{}, errors.New("station name is required")
		}
		return station{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		s, err := newStation("grill")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errStationNotConstructed))
		assert.Equal(t, "grill", s.name)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var s station

		assert.Equal(t, errStationNotConstructed, s.guard.Validate(errStationNotConstructed))
	})

	t.Run("constructor_rejects_empty_name", func(t *testing.T) {
		_, err := newStation("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "station name is required")
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}

func BenchmarkConstructorGuard(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
