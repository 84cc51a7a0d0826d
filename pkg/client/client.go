// Package client is a typed REST client for the supply order API.
//
//	c := client.New("http://supply:8080", client.Actor{ID: id, Role: "warehouse", WarehouseIDs: ids})
//	o, err := c.TransitionOrder(ctx, orderID, client.Transition{TargetStatus: "APPROVED"})
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.Retryable {
//		// refetch and retry
//	}
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	api "supply/internal/adapters/in/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Wire types shared with the server.
type (
	NewOrder               = api.NewOrder
	ItemInput              = api.ItemInput
	Order                  = api.Order
	Item                   = api.Item
	Warning                = api.Warning
	OrderWithWarnings      = api.OrderWithWarnings
	Transition             = api.Transition
	Worksheet              = api.Worksheet
	PreparedItem           = api.PreparedItem
	PreparationCommit      = api.PreparationCommit
	PreparationInput       = api.PreparationInput
	PreparationOutcome     = api.PreparationOutcome
	PreparationSummary     = api.PreparationSummary
	NotesUpdate            = api.NotesUpdate
	ItemsReplacement       = api.ItemsReplacement
	HistoryEntry           = api.HistoryEntry
	UnavailableItemsReport = api.UnavailableItemsReport
	UnavailableItem        = api.UnavailableItem
	ReportTotals           = api.ReportTotals
)

const DefaultTimeout = 10 * time.Second

// Actor identifies the caller. It is sent as request headers on every call.
type Actor struct {
	ID           uuid.UUID
	Role         string
	DepartmentID *uuid.UUID
	WarehouseIDs []uuid.UUID
}

func (a Actor) headers() map[string]string {
	h := map[string]string{
		api.HeaderActorID:   a.ID.String(),
		api.HeaderActorRole: a.Role,
	}
	if a.DepartmentID != nil {
		h[api.HeaderDepartmentID] = a.DepartmentID.String()
	}
	if len(a.WarehouseIDs) > 0 {
		ids := make([]string, 0, len(a.WarehouseIDs))
		for _, id := range a.WarehouseIDs {
			ids = append(ids, id.String())
		}
		h[api.HeaderWarehouseIDs] = strings.Join(ids, ",")
	}
	return h
}

// APIError is a non-2xx answer of the API.
type APIError struct {
	Status    int
	Code      string
	Message   string
	Retryable bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supply api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Option customizes the underlying resty client.
type Option func(*resty.Client)

func WithTimeout(timeout time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(timeout) }
}

// WithRetries retries transport failures and answers flagged as retryable.
func WithRetries(count int, wait time.Duration) Option {
	return func(r *resty.Client) {
		r.SetRetryCount(count).
			SetRetryWaitTime(wait).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				apiErr, ok := resp.Error().(*api.Error)
				return ok && resp.IsError() && apiErr.Retryable
			})
	}
}

// Client calls the /api/v1 routes on behalf of one actor.
type Client struct {
	r *resty.Client
}

func New(baseURL string, actor Actor, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+api.BaseURL).
		SetTimeout(DefaultTimeout).
		SetHeaders(actor.headers()).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(r)
	}
	return &Client{r: r}
}

func (c *Client) request(ctx context.Context, result any) *resty.Request {
	return c.r.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&api.Error{})
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("supply api: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
	if body, ok := resp.Error().(*api.Error); ok && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Retryable = body.Retryable
	}
	return apiErr
}

// CreateOrder submits a new order. A non-empty idempotencyKey makes the call
// safe to repeat; replayed reports that the order already existed.
func (c *Client) CreateOrder(
	ctx context.Context,
	body NewOrder,
	idempotencyKey string,
) (result OrderWithWarnings, replayed bool, err error) {
	req := c.request(ctx, &result).SetBody(body)
	if idempotencyKey != "" {
		req.SetHeader("Idempotency-Key", idempotencyKey)
	}

	resp, err := req.Post("/orders")
	if err = check(resp, err); err != nil {
		return OrderWithWarnings{}, false, err
	}
	return result, resp.StatusCode() == http.StatusOK, nil
}

// ListFilter narrows ListOrders. Empty fields are not sent.
type ListFilter struct {
	Status       string
	DepartmentID string
	WarehouseID  string
	CreatedBy    string
	DateFrom     string
	DateTo       string
}

func (f ListFilter) params() map[string]string {
	params := map[string]string{}
	for key, value := range map[string]string{
		"status":       f.Status,
		"departmentId": f.DepartmentID,
		"warehouseId":  f.WarehouseID,
		"createdBy":    f.CreatedBy,
		"dateFrom":     f.DateFrom,
		"dateTo":       f.DateTo,
	} {
		if value != "" {
			params[key] = value
		}
	}
	return params
}

func (c *Client) ListOrders(ctx context.Context, filter ListFilter) ([]Order, error) {
	var orders []Order
	resp, err := c.request(ctx, &orders).SetQueryParams(filter.params()).Get("/orders")
	if err = check(resp, err); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListCompletedOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	resp, err := c.request(ctx, &orders).Get("/orders/completed")
	if err = check(resp, err); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID uuid.UUID) (Order, error) {
	var o Order
	resp, err := c.request(ctx, &o).
		SetPathParam("orderId", orderID.String()).
		Get("/orders/{orderId}")
	if err = check(resp, err); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (c *Client) TransitionOrder(ctx context.Context, orderID uuid.UUID, body Transition) (Order, error) {
	var o Order
	resp, err := c.request(ctx, &o).
		SetPathParam("orderId", orderID.String()).
		SetBody(body).
		Patch("/orders/{orderId}/status")
	if err = check(resp, err); err != nil {
		return Order{}, err
	}
	return o, nil
}

// BeginPreparation fetches the preparation worksheet of an APPROVED order.
func (c *Client) BeginPreparation(ctx context.Context, orderID uuid.UUID) (Worksheet, error) {
	var w Worksheet
	resp, err := c.request(ctx, &w).
		SetPathParam("orderId", orderID.String()).
		Post("/orders/{orderId}/preparation")
	if err = check(resp, err); err != nil {
		return Worksheet{}, err
	}
	return w, nil
}

func (c *Client) CommitPreparation(
	ctx context.Context,
	orderID uuid.UUID,
	body PreparationCommit,
) (PreparationOutcome, error) {
	var outcome PreparationOutcome
	resp, err := c.request(ctx, &outcome).
		SetPathParam("orderId", orderID.String()).
		SetBody(body).
		Post("/orders/{orderId}/preparation/commit")
	if err = check(resp, err); err != nil {
		return PreparationOutcome{}, err
	}
	return outcome, nil
}

func (c *Client) MarkReady(ctx context.Context, orderID uuid.UUID, body NotesUpdate) (Order, error) {
	var o Order
	resp, err := c.request(ctx, &o).
		SetPathParam("orderId", orderID.String()).
		SetBody(body).
		Post("/orders/{orderId}/ready")
	if err = check(resp, err); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (c *Client) ReplaceItems(ctx context.Context, orderID uuid.UUID, body ItemsReplacement) (OrderWithWarnings, error) {
	var result OrderWithWarnings
	resp, err := c.request(ctx, &result).
		SetPathParam("orderId", orderID.String()).
		SetBody(body).
		Put("/orders/{orderId}/items")
	if err = check(resp, err); err != nil {
		return OrderWithWarnings{}, err
	}
	return result, nil
}

func (c *Client) UpdateNotes(ctx context.Context, orderID uuid.UUID, body NotesUpdate) (Order, error) {
	var o Order
	resp, err := c.request(ctx, &o).
		SetPathParam("orderId", orderID.String()).
		SetBody(body).
		Patch("/orders/{orderId}/notes")
	if err = check(resp, err); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (c *Client) GetOrderHistory(ctx context.Context, orderID uuid.UUID) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	resp, err := c.request(ctx, &entries).
		SetPathParam("orderId", orderID.String()).
		Get("/orders/{orderId}/history")
	if err = check(resp, err); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReportFilter narrows UnavailableItemsReport. Zero values are not sent.
type ReportFilter struct {
	WarehouseID   *uuid.UUID
	DateFrom      time.Time
	DateTo        time.Time
	ShortagesOnly bool
}

func (f ReportFilter) params() map[string]string {
	params := map[string]string{}
	if f.WarehouseID != nil {
		params["warehouseId"] = f.WarehouseID.String()
	}
	if !f.DateFrom.IsZero() {
		params["dateFrom"] = f.DateFrom.UTC().Format(time.RFC3339)
	}
	if !f.DateTo.IsZero() {
		params["dateTo"] = f.DateTo.UTC().Format(time.RFC3339)
	}
	if f.ShortagesOnly {
		params["shortagesOnly"] = strconv.FormatBool(true)
	}
	return params
}

func (c *Client) UnavailableItemsReport(ctx context.Context, filter ReportFilter) (UnavailableItemsReport, error) {
	var report UnavailableItemsReport
	resp, err := c.request(ctx, &report).
		SetQueryParams(filter.params()).
		Get("/reports/unavailable-items")
	if err = check(resp, err); err != nil {
		return UnavailableItemsReport{}, err
	}
	return report, nil
}
