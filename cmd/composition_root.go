package cmd

import (
	"log/slog"

	httpin "supply/internal/adapters/in/http"
	"supply/internal/adapters/out/postgres"
	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/application/usecases/queries"
	"supply/internal/core/domain/services"
	"supply/internal/core/ports"
	"supply/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	idempotency ports.IdempotencyStore
	reconciler  services.Reconciler
	logger      *slog.Logger
}

// NewCompositionRoot wires adapters into use cases. idempotency may be nil,
// which disables Idempotency-Key deduplication.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		idempotency: idempotency,
		reconciler:  services.NewReconciler(),
		logger:      logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.idempotency, c.logger)
	return &h
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	h := commands.NewTransitionOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateBeginPreparationCommandHandler() *commands.BeginPreparationCommandHandler {
	h := commands.NewBeginPreparationCommandHandler(c.orderUoWFactory(), c.reconciler)
	return &h
}

func (c *CompositionRoot) CreateCommitPreparationCommandHandler() *commands.CommitPreparationCommandHandler {
	h := commands.NewCommitPreparationCommandHandler(c.uoWFactory(), c.reconciler, c.logger)
	return &h
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() *commands.MarkReadyCommandHandler {
	h := commands.NewMarkReadyCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReplaceItemsCommandHandler() *commands.ReplaceItemsCommandHandler {
	h := commands.NewReplaceItemsCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateNotesCommandHandler() *commands.UpdateNotesCommandHandler {
	h := commands.NewUpdateNotesCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateListOrdersByRoleQueryHandler() queries.ListOrdersByRoleQueryHandler {
	return queries.NewListOrdersByRoleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCompletedOrdersQueryHandler() queries.ListCompletedOrdersQueryHandler {
	return queries.NewListCompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateUnavailableItemsReportQueryHandler() queries.UnavailableItemsReportQueryHandler {
	return queries.NewUnavailableItemsReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateShortageDigestQueryHandler() queries.ShortageDigestQueryHandler {
	return queries.NewShortageDigestQueryHandler(c.gormDB)
}

// HTTPHandlers returns every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		TransitionOrder:        c.CreateTransitionOrderCommandHandler(),
		BeginPreparation:       c.CreateBeginPreparationCommandHandler(),
		CommitPreparation:      c.CreateCommitPreparationCommandHandler(),
		MarkReady:              c.CreateMarkReadyCommandHandler(),
		ReplaceItems:           c.CreateReplaceItemsCommandHandler(),
		UpdateNotes:            c.CreateUpdateNotesCommandHandler(),
		ListOrdersByRole:       c.CreateListOrdersByRoleQueryHandler(),
		ListCompletedOrders:    c.CreateListCompletedOrdersQueryHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetOrderHistory:        c.CreateGetOrderHistoryQueryHandler(),
		UnavailableItemsReport: c.CreateUnavailableItemsReportQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateShortageDigestQueryHandler(), c.config.ShortageDigestSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
