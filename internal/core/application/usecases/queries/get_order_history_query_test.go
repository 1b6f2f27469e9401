package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actor := customerActor(t)

		query, err := queries.NewGetOrderHistoryQuery(orderID, actor)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(orderID))
		assert.True(t, query.Actor().Identity().IsEqual(actor.Identity()))
	})

	t.Run("invalid order id is rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{}, customerActor(t))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("unconstructed actor is rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), auth.ActorContext{})

		require.ErrorIs(t, err, auth.ErrActorContextIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		query := queries.GetOrderHistoryQuery{}

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})
}
