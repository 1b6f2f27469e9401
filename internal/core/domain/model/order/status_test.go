package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommercialStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		valid := []order.CommercialStatus{
			order.CommercialPending,
			order.CommercialConfirmed,
			order.CommercialPreparing,
			order.CommercialShipped,
			order.CommercialDelivered,
			order.CommercialCancelled,
			order.CommercialReturned,
		}

		for _, s := range valid {
			assert.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("unknown is invalid", func(t *testing.T) {
		require.Error(t, order.CommercialUnknown.Validate())
		require.Error(t, order.CommercialStatus(99).Validate())
	})
}

func TestCommercialStatus_Confirm(t *testing.T) {
	t.Run("pending confirms", func(t *testing.T) {
		s, err := order.CommercialPending.Confirm()

		require.NoError(t, err)
		assert.Equal(t, order.CommercialConfirmed, s)
	})

	t.Run("confirmation is not idempotent", func(t *testing.T) {
		nonPending := []order.CommercialStatus{
			order.CommercialConfirmed,
			order.CommercialPreparing,
			order.CommercialShipped,
			order.CommercialDelivered,
			order.CommercialCancelled,
			order.CommercialReturned,
		}

		for _, s := range nonPending {
			_, err := s.Confirm()
			require.Error(t, err, "confirm from %s must fail", s)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestCommercialStatus_MarkShipped(t *testing.T) {
	t.Run("confirmed and preparing ship", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{order.CommercialConfirmed, order.CommercialPreparing} {
			s, changed, err := from.MarkShipped()

			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, order.CommercialShipped, s)
		}
	})

	t.Run("at or past shipped is a no-op", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{order.CommercialShipped, order.CommercialDelivered} {
			s, changed, err := from.MarkShipped()

			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, from, s)
		}
	})

	t.Run("pending cannot skip to shipped", func(t *testing.T) {
		_, _, err := order.CommercialPending.MarkShipped()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "from pending to shipped")
	})

	t.Run("terminal side-exits cannot ship", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{order.CommercialCancelled, order.CommercialReturned} {
			_, _, err := from.MarkShipped()
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestCommercialStatus_MarkDelivered(t *testing.T) {
	t.Run("shipped delivers", func(t *testing.T) {
		s, changed, err := order.CommercialShipped.MarkDelivered()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.CommercialDelivered, s)
	})

	t.Run("delivered is a no-op", func(t *testing.T) {
		s, changed, err := order.CommercialDelivered.MarkDelivered()

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.CommercialDelivered, s)
	})

	t.Run("anything before shipped is rejected", func(t *testing.T) {
		before := []order.CommercialStatus{
			order.CommercialPending,
			order.CommercialConfirmed,
			order.CommercialPreparing,
		}

		for _, from := range before {
			_, _, err := from.MarkDelivered()
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestCommercialStatus_MarkReturned(t *testing.T) {
	t.Run("returns only after delivery", func(t *testing.T) {
		s, changed, err := order.CommercialDelivered.MarkReturned()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.CommercialReturned, s)
	})

	t.Run("returned is a no-op", func(t *testing.T) {
		_, changed, err := order.CommercialReturned.MarkReturned()

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("undelivered orders cannot return", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{
			order.CommercialPending,
			order.CommercialConfirmed,
			order.CommercialShipped,
			order.CommercialCancelled,
		} {
			_, _, err := from.MarkReturned()
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestCommercialStatus_Cancel(t *testing.T) {
	t.Run("cancellable strictly before shipped", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{
			order.CommercialPending,
			order.CommercialConfirmed,
			order.CommercialPreparing,
		} {
			s, changed, err := from.Cancel()

			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, order.CommercialCancelled, s)
		}
	})

	t.Run("cancelled is a no-op", func(t *testing.T) {
		_, changed, err := order.CommercialCancelled.Cancel()

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("shipped and beyond cannot cancel", func(t *testing.T) {
		for _, from := range []order.CommercialStatus{
			order.CommercialShipped,
			order.CommercialDelivered,
			order.CommercialReturned,
		} {
			_, _, err := from.Cancel()
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestLogisticsStatus_TransitionTo(t *testing.T) {
	t.Run("forward single steps succeed", func(t *testing.T) {
		steps := []struct {
			from, to order.LogisticsStatus
		}{
			{order.LogisticsToPrepare, order.LogisticsShipping},
			{order.LogisticsShipping, order.LogisticsDelivered},
			{order.LogisticsDelivered, order.LogisticsReturned},
		}

		for _, step := range steps {
			s, changed, err := step.from.TransitionTo(step.to)

			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, step.to, s)
		}
	})

	t.Run("same target is a no-op success", func(t *testing.T) {
		for _, s := range []order.LogisticsStatus{
			order.LogisticsToPrepare,
			order.LogisticsShipping,
			order.LogisticsDelivered,
			order.LogisticsReturned,
		} {
			result, changed, err := s.TransitionTo(s)

			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, s, result)
		}
	})

	t.Run("forward skip is rejected", func(t *testing.T) {
		_, _, err := order.LogisticsToPrepare.TransitionTo(order.LogisticsDelivered)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "from to_prepare to delivered")
	})

	t.Run("backward move is rejected", func(t *testing.T) {
		_, _, err := order.LogisticsDelivered.TransitionTo(order.LogisticsShipping)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, _, err = order.LogisticsShipping.TransitionTo(order.LogisticsToPrepare)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("returned before delivered is rejected", func(t *testing.T) {
		for _, from := range []order.LogisticsStatus{order.LogisticsToPrepare, order.LogisticsShipping} {
			_, _, err := from.TransitionTo(order.LogisticsReturned)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("invalid target is rejected", func(t *testing.T) {
		_, _, err := order.LogisticsToPrepare.TransitionTo(order.LogisticsUnknown)
		require.Error(t, err)
	})
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "pending", order.CommercialPending.String())
	assert.Equal(t, "confirmed", order.CommercialConfirmed.String())
	assert.Equal(t, "preparing", order.CommercialPreparing.String())
	assert.Equal(t, "shipped", order.CommercialShipped.String())
	assert.Equal(t, "delivered", order.CommercialDelivered.String())
	assert.Equal(t, "cancelled", order.CommercialCancelled.String())
	assert.Equal(t, "returned", order.CommercialReturned.String())
	assert.Equal(t, "unknown", order.CommercialUnknown.String())

	assert.Equal(t, "to_prepare", order.LogisticsToPrepare.String())
	assert.Equal(t, "shipping", order.LogisticsShipping.String())
	assert.Equal(t, "delivered", order.LogisticsDelivered.String())
	assert.Equal(t, "returned", order.LogisticsReturned.String())
	assert.Equal(t, "unknown", order.LogisticsUnknown.String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("commercial round-trips", func(t *testing.T) {
		for _, s := range []order.CommercialStatus{
			order.CommercialPending,
			order.CommercialConfirmed,
			order.CommercialPreparing,
			order.CommercialShipped,
			order.CommercialDelivered,
			order.CommercialCancelled,
			order.CommercialReturned,
		} {
			parsed, err := order.CommercialStatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}

		_, err := order.CommercialStatusFromString("unknown")
		require.Error(t, err)
	})

	t.Run("logistics round-trips", func(t *testing.T) {
		for _, s := range []order.LogisticsStatus{
			order.LogisticsToPrepare,
			order.LogisticsShipping,
			order.LogisticsDelivered,
			order.LogisticsReturned,
		} {
			parsed, err := order.LogisticsStatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}

		_, err := order.LogisticsStatusFromString("sailing")
		require.Error(t, err)
	})
}
