package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		actor := customerActor(t)

		query, err := queries.NewGetActiveOrdersQuery(actor)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.Actor().Identity().IsEqual(actor.Identity()))
	})

	t.Run("unconstructed actor is rejected", func(t *testing.T) {
		_, err := queries.NewGetActiveOrdersQuery(auth.ActorContext{})

		require.ErrorIs(t, err, auth.ErrActorContextIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		query := queries.GetActiveOrdersQuery{}

		assert.ErrorIs(t, query.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
	})
}

func customerActor(t *testing.T) auth.ActorContext {
	t.Helper()
	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleCustomer, nil)
	require.NoError(t, err)
	return actor
}

func agentActor(t *testing.T) auth.ActorContext {
	t.Helper()
	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleFulfillmentAgent, nil)
	require.NoError(t, err)
	return actor
}

func adminActor(t *testing.T) auth.ActorContext {
	t.Helper()
	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleAdministrator, nil)
	require.NoError(t, err)
	return actor
}
