package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateAgentCommand(t *testing.T) {
	t.Run("valid command without override", func(t *testing.T) {
		actor := adminActor(t)
		id := kernel.NewUUID()

		cmd, err := commands.NewCreateAgentCommand(id, actor, "Sam Porter", nil)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.True(t, cmd.AgentID().IsEqual(id))
		assert.Equal(t, "Sam Porter", cmd.Name())
		assert.Nil(t, cmd.CapabilityOverride())
	})

	t.Run("valid command with override", func(t *testing.T) {
		override := []auth.Capability{auth.CapabilityOrderView, auth.CapabilityOrderValidate}

		cmd, err := commands.NewCreateAgentCommand(kernel.NewUUID(), adminActor(t), "Trainee", override)

		require.NoError(t, err)
		assert.Equal(t, override, cmd.CapabilityOverride())
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := commands.NewCreateAgentCommand(kernel.NewUUID(), adminActor(t), "", nil)

		require.ErrorIs(t, err, commands.ErrAgentNameIsRequired)
	})

	t.Run("malformed override token", func(t *testing.T) {
		_, err := commands.NewCreateAgentCommand(
			kernel.NewUUID(), adminActor(t), "Sam Porter", []auth.Capability{"NotAToken"},
		)

		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		cmd := commands.CreateAgentCommand{}

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateAgentCommandIsNotConstructed)
	})
}
