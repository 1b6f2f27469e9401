package cmd

import (
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(gormDB *gorm.DB, publisher ports.OrderEventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateValidateOrderCommandHandler() commands.ValidateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewValidateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreatePrepareOrderCommandHandler() commands.PrepareOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPrepareOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateLogisticsCommandHandler() commands.UpdateLogisticsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLogisticsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateAgentCommandHandler() commands.CreateAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignAgentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateValidateOrderCommandHandler(),
		c.CreatePrepareOrderCommandHandler(),
		c.CreateUpdateLogisticsCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCreateAgentCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignAgentCommandHandler(), c.logger)
}

// NewKafkaOrderEventPublisher builds the Kafka-backed event publisher from the
// configuration.
func NewKafkaOrderEventPublisher(configs Config, logger *slog.Logger) (ports.OrderEventPublisher, error) {
	return kafka.NewOrderEventPublisher(
		[]string{configs.KafkaHost},
		configs.KafkaOrderChangedTopic,
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
