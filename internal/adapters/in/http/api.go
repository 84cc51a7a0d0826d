package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of openapi.yml.

type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type ItemInput struct {
	Name     string `json:"name,omitempty"`
	ItemName string `json:"itemName,omitempty"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type NewOrder struct {
	DepartmentId openapi_types.UUID  `json:"departmentId"`
	WarehouseId  *openapi_types.UUID `json:"warehouseId,omitempty"`
	Items        []ItemInput         `json:"items"`
	Notes        string              `json:"notes,omitempty"`
}

type Item struct {
	Id                openapi_types.UUID `json:"id"`
	Name              string             `json:"name"`
	Quantity          int                `json:"quantity"`
	Unit              string             `json:"unit"`
	RequestedQuantity int                `json:"requestedQuantity"`
	IsUnavailable     bool               `json:"isUnavailable"`
	IsShortage        bool               `json:"isShortage"`
	Notes             string             `json:"notes,omitempty"`
	MissingName       bool               `json:"missingName"`
}

type Order struct {
	Id           openapi_types.UUID  `json:"id"`
	Number       string              `json:"number"`
	DepartmentId openapi_types.UUID  `json:"departmentId"`
	WarehouseId  *openapi_types.UUID `json:"warehouseId"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    openapi_types.UUID  `json:"createdBy"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	DeliveredBy  *openapi_types.UUID `json:"deliveredBy"`
	Version      int64               `json:"version"`
	Items        []Item              `json:"items"`
}

type Warning struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
}

type OrderWithWarnings struct {
	Order    Order     `json:"order"`
	Warnings []Warning `json:"warnings"`
}

type Transition struct {
	TargetStatus    string              `json:"targetStatus"`
	Note            string              `json:"note,omitempty"`
	WarehouseId     *openapi_types.UUID `json:"warehouseId,omitempty"`
	ExpectedVersion *int64              `json:"expectedVersion,omitempty"`
}

type PreparedItem struct {
	ItemId            openapi_types.UUID `json:"itemId"`
	Name              string             `json:"name"`
	Unit              string             `json:"unit"`
	RequestedQuantity int                `json:"requestedQuantity"`
	AvailableQuantity int                `json:"availableQuantity"`
	IsUnavailable     bool               `json:"isUnavailable"`
	Notes             string             `json:"notes,omitempty"`
}

type Worksheet struct {
	OrderId openapi_types.UUID `json:"orderId"`
	Version int64              `json:"version"`
	Items   []PreparedItem     `json:"items"`
}

type PreparationInput struct {
	ItemId            *openapi_types.UUID `json:"itemId,omitempty"`
	AvailableQuantity int                 `json:"availableQuantity"`
	IsUnavailable     bool                `json:"isUnavailable,omitempty"`
	Notes             string              `json:"notes,omitempty"`
}

type PreparationCommit struct {
	Items           []PreparationInput `json:"items"`
	Notes           string             `json:"notes,omitempty"`
	ExpectedVersion *int64             `json:"expectedVersion,omitempty"`
}

type PreparationSummary struct {
	Items           int    `json:"items"`
	Fulfilled       int    `json:"fulfilled"`
	Short           int    `json:"short"`
	Unavailable     int    `json:"unavailable"`
	RequestedTotal  int    `json:"requestedTotal"`
	AvailableTotal  int    `json:"availableTotal"`
	FulfillmentRate string `json:"fulfillmentRate"`
}

type PreparationOutcome struct {
	Order     Order              `json:"order"`
	Summary   PreparationSummary `json:"summary"`
	Shortages []int              `json:"shortages"`
}

type NotesUpdate struct {
	Notes           string `json:"notes"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

type ItemsReplacement struct {
	Items           []ItemInput `json:"items"`
	ExpectedVersion *int64      `json:"expectedVersion,omitempty"`
}

type HistoryEntry struct {
	Id         openapi_types.UUID `json:"id"`
	Kind       string             `json:"kind"`
	FromStatus string             `json:"fromStatus,omitempty"`
	ToStatus   string             `json:"toStatus"`
	ActorId    openapi_types.UUID `json:"actorId"`
	OccurredAt time.Time          `json:"occurredAt"`
	Note       string             `json:"note,omitempty"`
}

type UnavailableItem struct {
	OrderId           openapi_types.UUID `json:"orderId"`
	OrderNumber       string             `json:"orderNumber"`
	ItemId            openapi_types.UUID `json:"itemId"`
	ItemName          string             `json:"itemName"`
	Unit              string             `json:"unit"`
	RequestedQuantity int                `json:"requestedQuantity"`
	AvailableQuantity int                `json:"availableQuantity"`
	IsUnavailable     bool               `json:"isUnavailable"`
	IsShortage        bool               `json:"isShortage"`
	Notes             string             `json:"notes,omitempty"`
	ActorId           openapi_types.UUID `json:"actorId"`
	WarehouseId       openapi_types.UUID `json:"warehouseId"`
	PreparedAt        time.Time          `json:"preparedAt"`
}

type ReportTotals struct {
	Rows            int    `json:"rows"`
	Unavailable     int    `json:"unavailable"`
	Short           int    `json:"short"`
	RequestedTotal  int    `json:"requestedTotal"`
	AvailableTotal  int    `json:"availableTotal"`
	FulfillmentRate string `json:"fulfillmentRate"`
}

type UnavailableItemsReport struct {
	Rows   []UnavailableItem `json:"rows"`
	Totals ReportTotals      `json:"totals"`
}

// ListOrdersParams are the query parameters of GET /orders. Values are kept
// as strings; unparsable ones are ignored by the filter.
type ListOrdersParams struct {
	Status       *string `form:"status,omitempty" json:"status,omitempty"`
	DepartmentId *string `form:"departmentId,omitempty" json:"departmentId,omitempty"`
	WarehouseId  *string `form:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	CreatedBy    *string `form:"createdBy,omitempty" json:"createdBy,omitempty"`
	DateFrom     *string `form:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo       *string `form:"dateTo,omitempty" json:"dateTo,omitempty"`
}

type UnavailableItemsReportParams struct {
	WarehouseId   *openapi_types.UUID `form:"warehouseId,omitempty" json:"warehouseId,omitempty"`
	DateFrom      *time.Time          `form:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo        *time.Time          `form:"dateTo,omitempty" json:"dateTo,omitempty"`
	ShortagesOnly *bool               `form:"shortagesOnly,omitempty" json:"shortagesOnly,omitempty"`
}

type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /orders/completed)
	ListCompletedOrders(ctx echo.Context) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PATCH /orders/{orderId}/status)
	TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/preparation)
	BeginPreparation(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/preparation/commit)
	CommitPreparation(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/ready)
	MarkReady(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /orders/{orderId}/items)
	ReplaceItems(ctx echo.Context, orderId openapi_types.UUID) error
	// (PATCH /orders/{orderId}/notes)
	UpdateNotes(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /reports/unavailable-items)
	UnavailableItemsReport(ctx echo.Context, params UnavailableItemsReportParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams
	if values, found := ctx.Request().Header[http.CanonicalHeaderKey("Idempotency-Key")]; found && len(values) == 1 {
		var key string
		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}
		params.IdempotencyKey = &key
	}
	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	query := ctx.QueryParams()
	for name, dest := range map[string]**string{
		"status":       &params.Status,
		"departmentId": &params.DepartmentId,
		"warehouseId":  &params.WarehouseId,
		"createdBy":    &params.CreatedBy,
		"dateFrom":     &params.DateFrom,
		"dateTo":       &params.DateTo,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) ListCompletedOrders(ctx echo.Context) error {
	return w.Handler.ListCompletedOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.GetOrder)
}

func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.TransitionOrder)
}

func (w *ServerInterfaceWrapper) BeginPreparation(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.BeginPreparation)
}

func (w *ServerInterfaceWrapper) CommitPreparation(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.CommitPreparation)
}

func (w *ServerInterfaceWrapper) MarkReady(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.MarkReady)
}

func (w *ServerInterfaceWrapper) ReplaceItems(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.ReplaceItems)
}

func (w *ServerInterfaceWrapper) UpdateNotes(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.UpdateNotes)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	return w.withOrderID(ctx, w.Handler.GetOrderHistory)
}

func (w *ServerInterfaceWrapper) UnavailableItemsReport(ctx echo.Context) error {
	var params UnavailableItemsReportParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "warehouseId", query, &params.WarehouseId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter warehouseId: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateFrom", query, &params.DateFrom); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dateFrom: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateTo", query, &params.DateTo); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dateTo: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "shortagesOnly", query, &params.ShortagesOnly); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter shortagesOnly: %s", err))
	}

	return w.Handler.UnavailableItemsReport(ctx, params)
}

func (w *ServerInterfaceWrapper) withOrderID(
	ctx echo.Context,
	next func(echo.Context, openapi_types.UUID) error,
) error {
	var orderId openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return next(ctx, orderId)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds each server route to the router under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders", w.ListOrders)
	router.GET(baseURL+"/orders/completed", w.ListCompletedOrders)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.PATCH(baseURL+"/orders/:orderId/status", w.TransitionOrder)
	router.POST(baseURL+"/orders/:orderId/preparation", w.BeginPreparation)
	router.POST(baseURL+"/orders/:orderId/preparation/commit", w.CommitPreparation)
	router.POST(baseURL+"/orders/:orderId/ready", w.MarkReady)
	router.PUT(baseURL+"/orders/:orderId/items", w.ReplaceItems)
	router.PATCH(baseURL+"/orders/:orderId/notes", w.UpdateNotes)
	router.GET(baseURL+"/orders/:orderId/history", w.GetOrderHistory)
	router.GET(baseURL+"/reports/unavailable-items", w.UnavailableItemsReport)
}
