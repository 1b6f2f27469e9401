package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidateOrderCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		actor := agentActor(t)
		id := kernel.NewUUID()

		cmd, err := commands.NewValidateOrderCommand(id, actor, "stock checked")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, actor, cmd.Actor())
		assert.Equal(t, "stock checked", cmd.Note())
	})

	t.Run("invalid order id", func(t *testing.T) {
		_, err := commands.NewValidateOrderCommand(kernel.UUID{}, agentActor(t), "")

		require.Error(t, err)
	})

	t.Run("unconstructed actor", func(t *testing.T) {
		_, err := commands.NewValidateOrderCommand(kernel.NewUUID(), authZero(), "")

		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		cmd := commands.ValidateOrderCommand{}

		assert.ErrorIs(t, cmd.Validate(), commands.ErrValidateOrderCommandIsNotConstructed)
	})
}
