package queries

import (
	"context"
	"database/sql"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UnavailableItemsReportQueryHandler reads preparation_logs newest first.
// Departments only see lines of their own orders and scoped warehouse staff
// only lines of their warehouses. Drivers have no access.
type UnavailableItemsReportQueryHandler struct {
	db *gorm.DB
}

func NewUnavailableItemsReportQueryHandler(db *gorm.DB) UnavailableItemsReportQueryHandler {
	return UnavailableItemsReportQueryHandler{db: db}
}

func (h UnavailableItemsReportQueryHandler) Handle(
	ctx context.Context,
	query UnavailableItemsReportQuery,
) (UnavailableItemsReport, error) {
	if err := query.Validate(); err != nil {
		return UnavailableItemsReport{}, err
	}

	actor := query.Actor()
	if actor.Is(kernel.RoleDriver) {
		return UnavailableItemsReport{}, errs.NewAuthorizationError(actor.Role().String(), "view the unavailable items report")
	}

	var p predicates
	switch {
	case actor.Is(kernel.RoleDepartment):
		var department uuid.UUID
		if id := actor.DepartmentID(); id != nil {
			department = id.Bytes()
		}
		p.add("o.department_id = ?", department)
	case actor.Is(kernel.RoleWarehouse) && actor.HasWarehouseScope():
		p.add("l.warehouse_id = ANY(?::uuid[])", pq.Array(idStrings(actor.WarehouseIDs())))
	}

	if id := query.WarehouseID(); id != nil {
		p.add("l.warehouse_id = ?", id.Bytes())
	}
	if from := query.DateFrom(); from != nil {
		p.add("l.prepared_at >= ?", *from)
	}
	if to := query.DateTo(); to != nil {
		p.add("l.prepared_at <= ?", *to)
	}
	if query.ShortagesOnly() {
		p.add("l.is_shortage")
	} else {
		p.add("(l.is_unavailable OR l.is_shortage OR l.available_quantity = 0)")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.order_number,
			l.item_id,
			l.item_name,
			l.unit,
			l.requested_quantity,
			l.available_quantity,
			l.is_unavailable,
			l.is_shortage,
			l.notes,
			l.actor_id,
			l.warehouse_id,
			l.prepared_at
		FROM preparation_logs l
		JOIN orders o ON o.id = l.order_id`+p.where()+`
		ORDER BY l.prepared_at DESC, l.order_number, l.item_name
	`, p.args...).Rows()
	if err != nil {
		return UnavailableItemsReport{}, err
	}
	defer rows.Close()

	report := UnavailableItemsReport{Rows: make([]UnavailableItemRow, 0)}
	for rows.Next() {
		row, scanErr := scanItemLog(rows)
		if scanErr != nil {
			return UnavailableItemsReport{}, scanErr
		}
		report.Rows = append(report.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return UnavailableItemsReport{}, err
	}

	report.Totals = totalsOf(report.Rows)
	return report, nil
}

func scanItemLog(row rowScanner) (UnavailableItemRow, error) {
	var r UnavailableItemRow
	var orderID, itemID, actorID, warehouseID uuid.UUID
	var notes sql.NullString

	err := row.Scan(
		&orderID,
		&r.OrderNumber,
		&itemID,
		&r.ItemName,
		&r.Unit,
		&r.RequestedQuantity,
		&r.AvailableQuantity,
		&r.IsUnavailable,
		&r.IsShortage,
		&notes,
		&actorID,
		&warehouseID,
		&r.PreparedAt,
	)
	if err != nil {
		return UnavailableItemRow{}, err
	}

	if r.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return UnavailableItemRow{}, err
	}
	if r.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
		return UnavailableItemRow{}, err
	}
	if r.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
		return UnavailableItemRow{}, err
	}
	if r.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
		return UnavailableItemRow{}, err
	}
	r.Notes = notes.String

	return r, nil
}

func totalsOf(rows []UnavailableItemRow) ReportTotals {
	totals := ReportTotals{Rows: len(rows)}
	for _, r := range rows {
		totals.RequestedTotal += r.RequestedQuantity
		totals.AvailableTotal += r.AvailableQuantity
		if r.IsShortage {
			totals.Short++
		} else {
			totals.Unavailable++
		}
	}
	totals.FulfillmentRate = order.FulfillmentRate(totals.RequestedTotal, totals.AvailableTotal)
	return totals
}
