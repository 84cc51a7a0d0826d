package queries

import (
	"context"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShortageDigestQueryHandler groups unavailable and short preparation lines
// by warehouse. Warehouses without any such line are omitted.
type ShortageDigestQueryHandler struct {
	db *gorm.DB
}

func NewShortageDigestQueryHandler(db *gorm.DB) ShortageDigestQueryHandler {
	return ShortageDigestQueryHandler{db: db}
}

func (h ShortageDigestQueryHandler) Handle(ctx context.Context, query ShortageDigestQuery) ([]WarehouseShortages, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	digest := make([]WarehouseShortages, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			warehouse_id,
			COUNT(DISTINCT order_id),
			COUNT(*) FILTER (WHERE NOT is_shortage),
			COUNT(*) FILTER (WHERE is_shortage),
			COALESCE(SUM(requested_quantity), 0),
			COALESCE(SUM(available_quantity), 0)
		FROM preparation_logs
		WHERE prepared_at >= ? AND prepared_at < ?
			AND (is_unavailable OR is_shortage OR available_quantity = 0)
		GROUP BY warehouse_id
		ORDER BY warehouse_id
	`, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line WarehouseShortages
		var warehouseID uuid.UUID

		err = rows.Scan(
			&warehouseID,
			&line.Orders,
			&line.Unavailable,
			&line.Short,
			&line.RequestedTotal,
			&line.AvailableTotal,
		)
		if err != nil {
			return nil, err
		}

		if line.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		line.FulfillmentRate = order.FulfillmentRate(line.RequestedTotal, line.AvailableTotal)
		digest = append(digest, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return digest, nil
}
