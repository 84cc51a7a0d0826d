package queries

import (
	"errors"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrUnavailableItemsReportQueryIsNotConstructed = errors.New(
		"UnavailableItemsReportQuery must be created via NewUnavailableItemsReportQuery constructor",
	)
)

// UnavailableItemsReportQuery selects preparation log rows that were
// unavailable or short. With shortagesOnly set, fully unavailable rows are
// left out.
//
// Example:
//
//	from := time.Now().AddDate(0, 0, -7)
//	query, err := NewUnavailableItemsReportQuery(actor, &warehouseID, &from, nil, false)
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
//	fmt.Printf("%d lines, fulfillment %s%%\n", len(report.Rows), report.Totals.FulfillmentRate)
type UnavailableItemsReportQuery struct {
	actor         kernel.Actor
	warehouseID   *kernel.UUID
	dateFrom      *time.Time
	dateTo        *time.Time
	shortagesOnly bool

	guard guard.ConstructorGuard
}

func NewUnavailableItemsReportQuery(
	actor kernel.Actor,
	warehouseID *kernel.UUID,
	dateFrom, dateTo *time.Time,
	shortagesOnly bool,
) (UnavailableItemsReportQuery, error) {
	var rangeErr error
	if dateFrom != nil && dateTo != nil && dateTo.Before(*dateFrom) {
		rangeErr = errs.NewValueIsOutOfRangeError("dateTo", dateTo.Format(time.RFC3339),
			dateFrom.Format(time.RFC3339), "unbounded")
	}

	if err := errors.Join(actor.Validate(), rangeErr); err != nil {
		return UnavailableItemsReportQuery{}, err
	}

	return UnavailableItemsReportQuery{
		actor:         actor,
		warehouseID:   warehouseID,
		dateFrom:      dateFrom,
		dateTo:        dateTo,
		shortagesOnly: shortagesOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q UnavailableItemsReportQuery) Validate() error {
	return q.guard.Validate(ErrUnavailableItemsReportQueryIsNotConstructed)
}

func (q UnavailableItemsReportQuery) Actor() kernel.Actor {
	return q.actor
}

func (q UnavailableItemsReportQuery) WarehouseID() *kernel.UUID {
	return q.warehouseID
}

func (q UnavailableItemsReportQuery) DateFrom() *time.Time {
	return q.dateFrom
}

func (q UnavailableItemsReportQuery) DateTo() *time.Time {
	return q.dateTo
}

func (q UnavailableItemsReportQuery) ShortagesOnly() bool {
	return q.shortagesOnly
}

// UnavailableItemRow is one preparation log line.
type UnavailableItemRow struct {
	OrderID           kernel.UUID
	OrderNumber       string
	ItemID            kernel.UUID
	ItemName          string
	Unit              string
	RequestedQuantity int
	AvailableQuantity int
	IsUnavailable     bool
	IsShortage        bool
	Notes             string
	ActorID           kernel.UUID
	WarehouseID       kernel.UUID
	PreparedAt        time.Time
}

// ReportTotals sums the rows of a report.
type ReportTotals struct {
	Rows            int
	Unavailable     int
	Short           int
	RequestedTotal  int
	AvailableTotal  int
	FulfillmentRate decimal.Decimal
}

type UnavailableItemsReport struct {
	Rows   []UnavailableItemRow
	Totals ReportTotals
}
