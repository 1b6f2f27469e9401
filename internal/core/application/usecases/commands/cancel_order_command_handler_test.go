package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_CustomerCancelsOwnOrder(t *testing.T) {
	ctx := t.Context()
	actor := customerActor(t)
	target := pendingOrderFor(t, actor.Identity())

	cmd, err := commands.NewCancelOrderCommand(target.ID(), actor, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderChanged", mock.Anything, target).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.CommercialCancelled, target.CommercialStatus())
	history := target.History()
	require.Equal(t, "cancelled", history[len(history)-1].Label())
	require.Equal(t, "changed my mind", history[len(history)-1].Note())
}

func TestCancelOrderCommandHandler_Handle_DeniedNotOwner(t *testing.T) {
	ctx := t.Context()
	actor := customerActor(t)
	target := pendingOrderFor(t, kernel.NewUUID()) // someone else's order

	cmd, err := commands.NewCancelOrderCommand(target.ID(), actor, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	var denied *errs.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	require.Equal(t, "not_owner", denied.Reason)
	require.Equal(t, order.CommercialPending, target.CommercialStatus())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_ShippedOrderRejected(t *testing.T) {
	ctx := t.Context()
	actor := agentActor(t)
	target := confirmedOrderAssignedTo(t, actor.Identity())
	require.NoError(t, target.UpdateLogistics(
		actor.Identity(), order.LogisticsShipping, order.Tracking{}, "", target.CreatedAt(),
	))

	cmd, err := commands.NewCancelOrderCommand(target.ID(), actor, "too late")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	require.Equal(t, order.CommercialShipped, target.CommercialStatus())
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsAnyOrder(t *testing.T) {
	ctx := t.Context()
	actor := adminActor(t)
	target := pendingOrderFor(t, kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(target.ID(), actor, "fraud suspicion")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderChanged", mock.Anything, target).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.CommercialCancelled, target.CommercialStatus())
}
