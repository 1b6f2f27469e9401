package kafka

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromOrder(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	number, err := kernel.NewOrderNumber(now, 7)
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), 3, 1250)
	require.NoError(t, err)

	customerID := kernel.NewUUID()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), number, customerID, []order.LineItem{item}, customerID, now,
	)
	require.NoError(t, err)

	agentID := kernel.NewUUID()
	require.NoError(t, aggregate.Confirm(agentID, "looks good", now.Add(time.Minute)))
	require.NoError(t, aggregate.AssignAgent(agentID, now.Add(time.Minute)))

	event := eventFromOrder(aggregate)

	assert.Equal(t, aggregate.ID().String(), event.OrderID)
	assert.Equal(t, number.String(), event.Number)
	assert.Equal(t, customerID.String(), event.CustomerID)
	require.NotNil(t, event.AssignedAgentID)
	assert.Equal(t, agentID.String(), *event.AssignedAgentID)
	assert.Equal(t, "confirmed", event.CommercialStatus)
	assert.Equal(t, "to_prepare", event.LogisticsStatus)
	assert.Equal(t, int64(3750), event.TotalCents)
	assert.Equal(t, 0, event.Version)
	assert.True(t, event.OccurredAt.Equal(now.Add(time.Minute)))

	require.Len(t, event.History, 2)
	assert.Equal(t, 1, event.History[0].Seq)
	assert.Equal(t, "pending", event.History[0].Label)
	assert.Equal(t, "order created", event.History[0].Note)
	assert.Equal(t, "confirmed", event.History[1].Label)
	assert.Equal(t, "looks good", event.History[1].Note)
}

func TestEventFromOrder_NoAgent(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	number, err := kernel.NewOrderNumber(now, 1)
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), 1, 990)
	require.NoError(t, err)

	customerID := kernel.NewUUID()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), number, customerID, []order.LineItem{item}, customerID, now,
	)
	require.NoError(t, err)

	event := eventFromOrder(aggregate)

	assert.Nil(t, event.AssignedAgentID)
	assert.Equal(t, "pending", event.CommercialStatus)
}
