package queries

import (
	"context"
	"database/sql"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderView is the read model of an order returned by every order query.
type OrderView struct {
	ID           kernel.UUID
	Seq          int64
	Number       string
	DepartmentID kernel.UUID
	WarehouseID  *kernel.UUID
	Status       order.Status
	Notes        string
	CreatedAt    time.Time
	CreatedBy    kernel.UUID
	UpdatedAt    time.Time
	DeliveredBy  *kernel.UUID
	Version      int64
	Items        []ItemView
}

// ItemView is one order line. MissingName marks items whose name was
// replaced with the placeholder.
type ItemView struct {
	ID                kernel.UUID
	Name              string
	Quantity          int
	Unit              string
	RequestedQuantity int
	IsUnavailable     bool
	IsShortage        bool
	Notes             string
	MissingName       bool
}

const selectOrders = `
	SELECT
		o.id,
		o.seq,
		o.number,
		o.department_id,
		o.warehouse_id,
		o.status,
		o.notes,
		o.created_at,
		o.created_by,
		o.updated_at,
		o.delivered_by,
		o.version
	FROM orders o`

// orderOrdering lists newest orders first; orders created in the same
// instant keep insertion order.
const orderOrdering = " ORDER BY o.created_at DESC, o.seq ASC"

// orderReader runs the shared order SELECT and attaches items.
type orderReader struct {
	db *gorm.DB
}

func (r orderReader) list(ctx context.Context, p *predicates) ([]OrderView, error) {
	views := make([]OrderView, 0)

	rows, err := r.db.WithContext(ctx).Raw(selectOrders+p.where()+orderOrdering, p.args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = r.attachItems(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r orderReader) attachItems(ctx context.Context, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]string, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i, view := range views {
		ids = append(ids, view.ID.String())
		index[view.ID.Bytes()] = i
		views[i].Items = make([]ItemView, 0)
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			id,
			name,
			quantity,
			unit,
			requested_quantity,
			is_unavailable,
			notes,
			missing_name
		FROM order_items
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, id uuid.UUID
		var item ItemView
		var notes sql.NullString

		err = rows.Scan(
			&orderID,
			&id,
			&item.Name,
			&item.Quantity,
			&item.Unit,
			&item.RequestedQuantity,
			&item.IsUnavailable,
			&notes,
			&item.MissingName,
		)
		if err != nil {
			return err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		item.ID = itemID
		item.Notes = notes.String
		item.IsShortage = order.IsShortage(item.Quantity, item.RequestedQuantity, item.IsUnavailable)

		i := index[orderID]
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderView, error) {
	var view OrderView
	var id, departmentID, createdBy uuid.UUID
	var warehouseID, deliveredBy uuid.NullUUID
	var status string
	var notes sql.NullString

	err := row.Scan(
		&id,
		&view.Seq,
		&view.Number,
		&departmentID,
		&warehouseID,
		&status,
		&notes,
		&view.CreatedAt,
		&createdBy,
		&view.UpdatedAt,
		&deliveredBy,
		&view.Version,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.DepartmentID, err = kernel.UUIDFromBytes(departmentID[:]); err != nil {
		return OrderView{}, err
	}
	if view.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
		return OrderView{}, err
	}
	if view.WarehouseID, err = nullableID(warehouseID); err != nil {
		return OrderView{}, err
	}
	if view.DeliveredBy, err = nullableID(deliveredBy); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	view.Notes = notes.String

	return view, nil
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // absent reference
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// applyScope restricts p to the orders actor may see. It mirrors
// order.Order.IsVisibleTo.
func applyScope(p *predicates, actor kernel.Actor) {
	switch actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleDepartment:
		var department uuid.UUID
		if id := actor.DepartmentID(); id != nil {
			department = id.Bytes()
		}
		p.add("o.department_id = ?", department)
	case kernel.RoleWarehouse:
		if actor.HasWarehouseScope() {
			p.add("(o.warehouse_id IS NULL OR o.warehouse_id = ANY(?::uuid[]))", pq.Array(idStrings(actor.WarehouseIDs())))
		}
	case kernel.RoleDriver:
		p.add("o.status = ANY(?::text[])", pq.Array([]string{order.Ready.String(), order.Delivered.String()}))
	default:
		p.add("FALSE")
	}
}

func scopedOrderPredicates(actor kernel.Actor, orderID kernel.UUID) *predicates {
	var p predicates
	p.add("o.id = ?", orderID.Bytes())
	applyScope(&p, actor)
	return &p
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
