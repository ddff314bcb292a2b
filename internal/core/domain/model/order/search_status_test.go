package order_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchStatus_Validate(t *testing.T) {
	t.Run("should validate all defined phases", func(t *testing.T) {
		for _, status := range []order.SearchStatus{
			order.SearchNotStarted,
			order.Searching,
			order.SearchExpanded,
			order.SearchStopped,
		} {
			require.NoError(t, status.Validate())
		}
	})

	t.Run("should reject out-of-range values", func(t *testing.T) {
		err := order.SearchStatus(42).Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSearchStatus_FromString(t *testing.T) {
	t.Run("should map the empty string to not started", func(t *testing.T) {
		parsed, err := order.SearchStatusFromString("")

		require.NoError(t, err)
		assert.Equal(t, order.SearchNotStarted, parsed)
	})

	t.Run("should round-trip the active and terminal phases", func(t *testing.T) {
		for _, status := range []order.SearchStatus{
			order.Searching, order.SearchExpanded, order.SearchStopped,
		} {
			parsed, err := order.SearchStatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unrecognized strings", func(t *testing.T) {
		_, err := order.SearchStatusFromString("paused")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSearchStatus_Transitions(t *testing.T) {
	t.Run("should start from not started", func(t *testing.T) {
		newStatus, err := order.SearchNotStarted.Start()

		require.NoError(t, err)
		assert.Equal(t, order.Searching, newStatus)
	})

	t.Run("should restart from stopped", func(t *testing.T) {
		newStatus, err := order.SearchStopped.Start()

		require.NoError(t, err)
		assert.Equal(t, order.Searching, newStatus)
	})

	t.Run("should reject starting an active session", func(t *testing.T) {
		for _, status := range []order.SearchStatus{order.Searching, order.SearchExpanded} {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				_, err := status.Start()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidState)
			})
		}
	})

	t.Run("should expand only from searching", func(t *testing.T) {
		newStatus, err := order.Searching.Expand()
		require.NoError(t, err)
		assert.Equal(t, order.SearchExpanded, newStatus)

		for _, status := range []order.SearchStatus{
			order.SearchNotStarted, order.SearchExpanded, order.SearchStopped,
		} {
			_, err := status.Expand()
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidState)
		}
	})

	t.Run("should stop only from expanded", func(t *testing.T) {
		newStatus, err := order.SearchExpanded.Stop()
		require.NoError(t, err)
		assert.Equal(t, order.SearchStopped, newStatus)
	})

	t.Run("should never stop directly from searching", func(t *testing.T) {
		_, err := order.Searching.Stop()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should never regress from expanded to searching", func(t *testing.T) {
		_, err := order.SearchExpanded.Expand()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestSearchStatus_IsActive(t *testing.T) {
	assert.False(t, order.SearchNotStarted.IsActive())
	assert.True(t, order.Searching.IsActive())
	assert.True(t, order.SearchExpanded.IsActive())
	assert.False(t, order.SearchStopped.IsActive())
}
