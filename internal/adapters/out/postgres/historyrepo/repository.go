package historyrepo

import (
	"context"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryRepository appends audit rows. It never updates or deletes them.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) AddEntries(ctx context.Context, entries ...history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, entryFromDomain(e))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormHistoryRepository) AddItemLogs(ctx context.Context, logs ...history.ItemLog) error {
	if len(logs) == 0 {
		return nil
	}

	dtos := make([]ItemLogDTO, 0, len(logs))
	for _, l := range logs {
		if err := l.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, itemLogFromDomain(l))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Entries returns the history of one order, oldest first.
func (r *GormHistoryRepository) Entries(ctx context.Context, orderID kernel.UUID) ([]history.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := entryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
