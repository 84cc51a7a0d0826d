package orderrepo

import (
	"context"
	"errors"

	"supply/internal/adapters/out/postgres/pgerr"
	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository stores orders. Run it on a transaction: Add and Update
// write several tables and rely on the caller to commit them together.
type GormOrderRepository struct {
	db      *gorm.DB
	history historyWriter
	tracker aggregateTracker
}

type historyWriter interface {
	AddEntries(ctx context.Context, entries ...history.Entry) error
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, entries historyWriter, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		history: entries,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", NumberSequence).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order", aggregate.Number())
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return err
	}

	return r.flush(ctx, aggregate, false)
}

// Update writes the aggregate if the stored version still matches and bumps
// the version. Items are rewritten as a whole.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"warehouse_id": dto.WarehouseID,
			"status":       dto.Status,
			"notes":        dto.Notes,
			"updated_at":   dto.UpdatedAt,
			"delivered_by": dto.DeliveredBy,
			"version":      dto.Version + 1,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "order", aggregate.Number())
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.Number())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return pgerr.Translate(err, "order", aggregate.Number())
	}

	return r.flush(ctx, aggregate, true)
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, r.db.WithContext(ctx))
}

// GetForUpdate holds a row lock on the order until the transaction ends, so
// concurrent writers to the same order are serialized.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, db *gorm.DB) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// flush writes the queued history entries and marks the aggregate as saved.
func (r *GormOrderRepository) flush(ctx context.Context, aggregate *order.Order, bump bool) error {
	if err := r.history.AddEntries(ctx, aggregate.PendingHistory()...); err != nil {
		return err
	}

	aggregate.ClearPendingHistory()
	if bump {
		aggregate.BumpVersion()
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
