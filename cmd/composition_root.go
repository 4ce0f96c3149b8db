package cmd

import (
	"log/slog"

	"craftorders/internal/adapters/in/realtime"
	"craftorders/internal/adapters/out/auth"
	"craftorders/internal/adapters/out/kafka"
	"craftorders/internal/adapters/out/postgres"
	"craftorders/internal/adapters/out/postgres/catalogrepo"
	"craftorders/internal/core/application/usecases/commands"
	"craftorders/internal/core/application/usecases/queries"
	"craftorders/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalogReader
	notifier   *kafka.Notifier
	verifier   *auth.JWTTokenVerifier
	registry   *realtime.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormCatalogReader(gormDB),
		notifier:   kafka.NewNotifier(config.KafkaHost, config.KafkaOrderEventsTopic),
		verifier:   auth.NewJWTTokenVerifier(config.JWTSecret),
		registry:   realtime.NewRegistry(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSetQuoteCommandHandler() commands.SetQuoteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetQuoteCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreatePostMessageCommandHandler() commands.PostMessageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostMessageCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkMessageReadCommandHandler() commands.MarkMessageReadCommandHandler {
	var f commands.ConversationUoWFactory = FuncConversationUoWFactory(func() commands.ConversationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkMessageReadCommandHandler(f)
}

func (c *CompositionRoot) CreateArchiveIdleConversationsCommandHandler() commands.ArchiveIdleConversationsCommandHandler {
	var f commands.ConversationUoWFactory = FuncConversationUoWFactory(func() commands.ConversationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveIdleConversationsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetOrderTotalsQueryHandler() queries.GetOrderTotalsQueryHandler {
	return queries.NewGetOrderTotalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetValidStatusTransitionsQueryHandler() queries.GetValidStatusTransitionsQueryHandler {
	return queries.NewGetValidStatusTransitionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConversationHistoryQueryHandler() queries.GetConversationHistoryQueryHandler {
	return queries.NewGetConversationHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

func (c *CompositionRoot) TokenVerifier() ports.TokenVerifier {
	return c.verifier
}

func (c *CompositionRoot) Notifier() *kafka.Notifier {
	return c.notifier
}

func (c *CompositionRoot) CreateRealtimeCoordinator() *realtime.Coordinator {
	return realtime.NewCoordinator(
		c.registry,
		c.CreatePostMessageCommandHandler(),
		c.CreateMarkMessageReadCommandHandler(),
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncConversationUoWFactory func() commands.ConversationUoW

func (f FuncConversationUoWFactory) Create() commands.ConversationUoW {
	return f()
}
