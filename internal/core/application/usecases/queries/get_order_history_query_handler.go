package queries

import (
	"context"
	"database/sql"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler returns history entries oldest first. The
// order must be visible to the actor, otherwise the call fails with
// ObjectNotFoundError.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(actor, orderID)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
//	for _, e := range entries {
//	    fmt.Printf("%s %s -> %s by %s\n", e.OccurredAt, e.FromStatus, e.ToStatus, e.ActorID)
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	visible, err := h.visible(ctx, query)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	entries := make([]HistoryEntryView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			from_status,
			to_status,
			actor_id,
			occurred_at,
			note
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at, seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry HistoryEntryView
		var id, actorID uuid.UUID
		var kind string
		var from, note sql.NullString

		err = rows.Scan(
			&id,
			&kind,
			&from,
			&entry.ToStatus,
			&actorID,
			&entry.OccurredAt,
			&note,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		entry.Kind = history.Kind(kind)
		entry.FromStatus = from.String
		entry.Note = note.String
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h GetOrderHistoryQueryHandler) visible(ctx context.Context, query GetOrderHistoryQuery) (bool, error) {
	p := scopedOrderPredicates(query.Actor(), query.OrderID())

	var count int64
	err := h.db.WithContext(ctx).Raw("SELECT COUNT(*) FROM orders o"+p.where(), p.args...).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
