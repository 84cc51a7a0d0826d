package http

import (
	"context"
	"net/http"

	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/application/usecases/queries"
	"supply/internal/core/domain/model/order"
	"supply/internal/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports of the server. The command and query handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(context.Context, commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	TransitionOrderHandler interface {
		Handle(context.Context, commands.TransitionOrderCommand) (*order.Order, error)
	}
	BeginPreparationHandler interface {
		Handle(context.Context, commands.BeginPreparationCommand) (commands.BeginPreparationResult, error)
	}
	CommitPreparationHandler interface {
		Handle(context.Context, commands.CommitPreparationCommand) (commands.CommitPreparationResult, error)
	}
	MarkReadyHandler interface {
		Handle(context.Context, commands.MarkReadyCommand) (*order.Order, error)
	}
	ReplaceItemsHandler interface {
		Handle(context.Context, commands.ReplaceItemsCommand) (commands.ReplaceItemsResult, error)
	}
	UpdateNotesHandler interface {
		Handle(context.Context, commands.UpdateNotesCommand) (*order.Order, error)
	}
	ListOrdersByRoleHandler interface {
		Handle(context.Context, queries.ListOrdersByRoleQuery) ([]queries.OrderView, error)
	}
	ListCompletedOrdersHandler interface {
		Handle(context.Context, queries.ListCompletedOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderHandler interface {
		Handle(context.Context, queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetOrderHistoryHandler interface {
		Handle(context.Context, queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error)
	}
	UnavailableItemsReportHandler interface {
		Handle(context.Context, queries.UnavailableItemsReportQuery) (queries.UnavailableItemsReport, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder            CreateOrderHandler
	TransitionOrder        TransitionOrderHandler
	BeginPreparation       BeginPreparationHandler
	CommitPreparation      CommitPreparationHandler
	MarkReady              MarkReadyHandler
	ReplaceItems           ReplaceItemsHandler
	UpdateNotes            UpdateNotesHandler
	ListOrdersByRole       ListOrdersByRoleHandler
	ListCompletedOrders    ListCompletedOrdersHandler
	GetOrder               GetOrderHandler
	GetOrderHistory        GetOrderHistoryHandler
	UnavailableItemsReport UnavailableItemsReportHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

var _ ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders. A replayed Idempotency-Key answers
// 200 with the original order instead of 201.
func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	departmentID, err := toKernelID("departmentId", body.DepartmentId)
	if err != nil {
		return err
	}
	warehouseID, err := toOptionalKernelID("warehouseId", body.WarehouseId)
	if err != nil {
		return err
	}

	var key string
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	cmd, err := commands.NewCreateOrderCommand(actor, departmentID, warehouseID, toDrafts(body.Items), body.Notes, key)
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		metrics.IdempotentReplaysTotal.Inc()
	}
	return ctx.JSON(status, OrderWithWarnings{
		Order:    orderFromDomain(result.Order),
		Warnings: warningsFromDomain(result.Warnings),
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	filter := queries.NewOrderFilter(
		deref(params.Status),
		deref(params.DepartmentId),
		deref(params.WarehouseId),
		deref(params.CreatedBy),
		deref(params.DateFrom),
		deref(params.DateTo),
	)
	query, err := queries.NewListOrdersByRoleQuery(actor, filter)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListOrdersByRole.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// ListCompletedOrders handles GET /api/v1/orders/completed.
func (s *Server) ListCompletedOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListCompletedOrdersQuery(actor)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListCompletedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// TransitionOrder handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	var body Transition
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	target, err := order.ParseStatus(body.TargetStatus)
	if err != nil {
		return err
	}
	warehouseID, err := toOptionalKernelID("warehouseId", body.WarehouseId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, id, target, body.Note, warehouseID, body.ExpectedVersion)
	if err != nil {
		return err
	}

	o, err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// BeginPreparation handles POST /api/v1/orders/{orderId}/preparation.
// Nothing is written; the worksheet is edited client-side and sent back to
// CommitPreparation together with its version.
func (s *Server) BeginPreparation(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewBeginPreparationCommand(actor, id)
	if err != nil {
		return err
	}

	result, err := s.handlers.BeginPreparation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, worksheetFromDomain(id, result.Version, result.Worksheet))
}

// CommitPreparation handles POST /api/v1/orders/{orderId}/preparation/commit.
func (s *Server) CommitPreparation(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	var body PreparationCommit
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	inputs, err := toPreparationInputs(body.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCommitPreparationCommand(actor, id, inputs, body.Notes, body.ExpectedVersion)
	if err != nil {
		return err
	}

	result, err := s.handlers.CommitPreparation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(order.Preparing.String()).Inc()
	metrics.ObservePreparation(result.Summary.Fulfilled, result.Summary.Short, result.Summary.Unavailable)

	shortages := result.Shortages
	if shortages == nil {
		shortages = []int{}
	}
	return ctx.JSON(http.StatusOK, PreparationOutcome{
		Order:     orderFromDomain(result.Order),
		Summary:   summaryFromDomain(result.Summary),
		Shortages: shortages,
	})
}

// MarkReady handles POST /api/v1/orders/{orderId}/ready. The body is optional.
func (s *Server) MarkReady(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	var body NotesUpdate
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewMarkReadyCommand(actor, id, body.Notes, body.ExpectedVersion)
	if err != nil {
		return err
	}

	o, err := s.handlers.MarkReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(order.Ready.String()).Inc()
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// ReplaceItems handles PUT /api/v1/orders/{orderId}/items.
func (s *Server) ReplaceItems(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	var body ItemsReplacement
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewReplaceItemsCommand(actor, id, toDrafts(body.Items), body.ExpectedVersion)
	if err != nil {
		return err
	}

	result, err := s.handlers.ReplaceItems.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderWithWarnings{
		Order:    orderFromDomain(result.Order),
		Warnings: warningsFromDomain(result.Warnings),
	})
}

// UpdateNotes handles PATCH /api/v1/orders/{orderId}/notes.
func (s *Server) UpdateNotes(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	var body NotesUpdate
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateNotesCommand(actor, id, body.Notes, body.ExpectedVersion)
	if err != nil {
		return err
	}

	o, err := s.handlers.UpdateNotes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderId)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderHistoryQuery(actor, id)
	if err != nil {
		return err
	}

	entries, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, historyFromViews(entries))
}

// UnavailableItemsReport handles GET /api/v1/reports/unavailable-items.
func (s *Server) UnavailableItemsReport(ctx echo.Context, params UnavailableItemsReportParams) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	warehouseID, err := toOptionalKernelID("warehouseId", params.WarehouseId)
	if err != nil {
		return err
	}

	shortagesOnly := params.ShortagesOnly != nil && *params.ShortagesOnly
	query, err := queries.NewUnavailableItemsReportQuery(actor, warehouseID, params.DateFrom, params.DateTo, shortagesOnly)
	if err != nil {
		return err
	}

	report, err := s.handlers.UnavailableItemsReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reportFromQuery(report))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
