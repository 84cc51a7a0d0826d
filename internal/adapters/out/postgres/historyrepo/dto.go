// Package historyrepo persists the audit trail: one order_history row per
// lifecycle event and one preparation_logs row per item of a committed
// preparation.
package historyrepo

import (
	"time"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntrySequence orders history rows written within the same instant.
const EntrySequence = "order_history_seq"

type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"not null;default:nextval('order_history_seq')"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind       string    `gorm:"size:32;not null"`
	FromStatus string    `gorm:"size:16"`
	ToStatus   string    `gorm:"size:16;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	OccurredAt time.Time `gorm:"index;not null"`
	Note       string
}

func (EntryDTO) TableName() string {
	return "order_history"
}

type ItemLogDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderNumber       string    `gorm:"size:16;not null"`
	ItemID            uuid.UUID `gorm:"type:uuid;not null"`
	ItemName          string    `gorm:"not null"`
	Unit              string    `gorm:"size:16;not null"`
	RequestedQuantity int       `gorm:"not null"`
	AvailableQuantity int       `gorm:"not null"`
	IsUnavailable     bool      `gorm:"not null"`
	IsShortage        bool      `gorm:"not null"`
	Notes             string
	ActorID           uuid.UUID `gorm:"type:uuid;not null"`
	WarehouseID       uuid.UUID `gorm:"type:uuid;index;not null"`
	PreparedAt        time.Time `gorm:"index;not null"`
}

func (ItemLogDTO) TableName() string {
	return "preparation_logs"
}

func entryFromDomain(e history.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		Kind:       string(e.Kind()),
		FromStatus: e.FromStatus(),
		ToStatus:   e.ToStatus(),
		ActorID:    e.ActorID().Bytes(),
		OccurredAt: e.OccurredAt().UTC(),
		Note:       e.Note(),
	}
}

func entryToDomain(dto EntryDTO) (history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return history.Entry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return history.Entry{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return history.Entry{}, err
	}

	return history.RestoreEntry(id, orderID, history.Kind(dto.Kind), dto.FromStatus, dto.ToStatus,
		actorID, dto.OccurredAt, dto.Note)
}

func itemLogFromDomain(l history.ItemLog) ItemLogDTO {
	r := l.Record()
	return ItemLogDTO{
		ID:                l.ID().Bytes(),
		OrderID:           r.OrderID.Bytes(),
		OrderNumber:       r.OrderNumber,
		ItemID:            r.ItemID.Bytes(),
		ItemName:          r.ItemName,
		Unit:              r.Unit,
		RequestedQuantity: r.RequestedQuantity,
		AvailableQuantity: r.AvailableQuantity,
		IsUnavailable:     r.IsUnavailable,
		IsShortage:        l.IsShortage(),
		Notes:             r.Notes,
		ActorID:           r.ActorID.Bytes(),
		WarehouseID:       r.WarehouseID.Bytes(),
		PreparedAt:        r.PreparedAt.UTC(),
	}
}
