// Package orderrepo persists the order aggregate: one orders row plus its
// order_items rows, written together with the order's queued history entries.
package orderrepo

import (
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// NumberSequence feeds order numbers.
const NumberSequence = "order_number_seq"

// OrderDTO is the orders row. Status is stored by name so that reports and
// ad-hoc SQL stay readable.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq          int64          `gorm:"uniqueIndex;not null"`
	Number       string         `gorm:"size:16;uniqueIndex;not null"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;index;not null"`
	WarehouseID  *uuid.UUID     `gorm:"type:uuid;index"`
	Status       string         `gorm:"size:16;index;not null"`
	Notes        string
	CreatedAt    time.Time      `gorm:"autoCreateTime:false;index;not null"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;index;not null"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime:false;not null"`
	DeliveredBy  *uuid.UUID     `gorm:"type:uuid"`
	Version      int64          `gorm:"not null"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order; Position keeps the request order.
type OrderItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Position          int       `gorm:"not null"`
	Name              string    `gorm:"not null"`
	Quantity          int       `gorm:"not null"`
	Unit              string    `gorm:"size:16;not null"`
	RequestedQuantity int       `gorm:"not null"`
	IsUnavailable     bool      `gorm:"not null"`
	Notes             string
	MissingName       bool `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		Seq:          o.Seq(),
		Number:       o.Number(),
		DepartmentID: o.DepartmentID().Bytes(),
		WarehouseID:  optionalID(o.WarehouseID()),
		Status:       o.Status().String(),
		Notes:        o.Notes(),
		CreatedAt:    o.CreatedAt().UTC(),
		CreatedBy:    o.CreatedBy().Bytes(),
		UpdatedAt:    o.UpdatedAt().UTC(),
		DeliveredBy:  optionalID(o.DeliveredBy()),
		Version:      o.Version(),
		Items:        make([]OrderItemDTO, 0, len(items)),
	}

	for i, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:                item.ID().Bytes(),
			OrderID:           dto.ID,
			Position:          i,
			Name:              item.Name(),
			Quantity:          item.Quantity(),
			Unit:              item.Unit().String(),
			RequestedQuantity: item.RequestedQuantity(),
			IsUnavailable:     item.IsUnavailable(),
			Notes:             item.Notes(),
			MissingName:       item.HasMissingName(),
		})
	}
	return dto
}

// toDomain expects dto.Items sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := restoreIDs(dto.ID, dto.DepartmentID, dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	warehouseID, err := restoreOptionalID(dto.WarehouseID)
	if err != nil {
		return nil, err
	}
	deliveredBy, err := restoreOptionalID(dto.DeliveredBy)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.RestoreItem(
			itemID,
			itemDTO.Name,
			itemDTO.Quantity,
			order.Unit(itemDTO.Unit),
			itemDTO.RequestedQuantity,
			itemDTO.IsUnavailable,
			itemDTO.Notes,
			itemDTO.MissingName,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           ids[0],
		Seq:          dto.Seq,
		DepartmentID: ids[1],
		WarehouseID:  warehouseID,
		Status:       status,
		Items:        items,
		Notes:        dto.Notes,
		CreatedAt:    dto.CreatedAt,
		CreatedBy:    ids[2],
		UpdatedAt:    dto.UpdatedAt,
		DeliveredBy:  deliveredBy,
		Version:      dto.Version,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent column
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func restoreIDs(raws ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raws))
	for _, raw := range raws {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
