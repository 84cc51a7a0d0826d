package http

import (
	"supply/internal/core/application/usecases/queries"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelID(paramName string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return parsed, nil
}

func toOptionalKernelID(paramName string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent parameter
	}
	parsed, err := toKernelID(paramName, *id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func fromOptionalKernelID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func toDrafts(items []ItemInput) []order.ItemDraft {
	drafts := make([]order.ItemDraft, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, order.ItemDraft{
			Name:     item.Name,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Notes:    item.Notes,
		})
	}
	return drafts
}

func toPreparationInputs(items []PreparationInput) ([]order.PreparationInput, error) {
	inputs := make([]order.PreparationInput, 0, len(items))
	for _, item := range items {
		itemID, err := toOptionalKernelID("itemId", item.ItemId)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, order.PreparationInput{
			ItemID:            itemID,
			AvailableQuantity: item.AvailableQuantity,
			IsUnavailable:     item.IsUnavailable,
			Notes:             item.Notes,
		})
	}
	return inputs, nil
}

func orderFromDomain(o *order.Order) Order {
	items := make([]Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, Item{
			Id:                item.ID().Bytes(),
			Name:              item.Name(),
			Quantity:          item.Quantity(),
			Unit:              item.Unit().String(),
			RequestedQuantity: item.RequestedQuantity(),
			IsUnavailable:     item.IsUnavailable(),
			IsShortage:        item.IsShortage(),
			Notes:             item.Notes(),
			MissingName:       item.HasMissingName(),
		})
	}

	return Order{
		Id:           o.ID().Bytes(),
		Number:       o.Number(),
		DepartmentId: o.DepartmentID().Bytes(),
		WarehouseId:  fromOptionalKernelID(o.WarehouseID()),
		Status:       o.Status().String(),
		Notes:        o.Notes(),
		CreatedAt:    o.CreatedAt(),
		CreatedBy:    o.CreatedBy().Bytes(),
		UpdatedAt:    o.UpdatedAt(),
		DeliveredBy:  fromOptionalKernelID(o.DeliveredBy()),
		Version:      o.Version(),
		Items:        items,
	}
}

func orderFromView(v queries.OrderView) Order {
	items := make([]Item, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, Item{
			Id:                item.ID.Bytes(),
			Name:              item.Name,
			Quantity:          item.Quantity,
			Unit:              item.Unit,
			RequestedQuantity: item.RequestedQuantity,
			IsUnavailable:     item.IsUnavailable,
			IsShortage:        item.IsShortage,
			Notes:             item.Notes,
			MissingName:       item.MissingName,
		})
	}

	return Order{
		Id:           v.ID.Bytes(),
		Number:       v.Number,
		DepartmentId: v.DepartmentID.Bytes(),
		WarehouseId:  fromOptionalKernelID(v.WarehouseID),
		Status:       v.Status.String(),
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		CreatedBy:    v.CreatedBy.Bytes(),
		UpdatedAt:    v.UpdatedAt,
		DeliveredBy:  fromOptionalKernelID(v.DeliveredBy),
		Version:      v.Version,
		Items:        items,
	}
}

func ordersFromViews(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, orderFromView(v))
	}
	return out
}

func warningsFromDomain(warnings []order.Warning) []Warning {
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, Warning{Index: w.Index, Code: w.Code})
	}
	return out
}

func worksheetFromDomain(orderID kernel.UUID, version int64, items order.PreparedItems) Worksheet {
	out := Worksheet{
		OrderId: orderID.Bytes(),
		Version: version,
		Items:   make([]PreparedItem, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, PreparedItem{
			ItemId:            item.ItemID().Bytes(),
			Name:              item.Name(),
			Unit:              item.Unit().String(),
			RequestedQuantity: item.RequestedQuantity(),
			AvailableQuantity: item.AvailableQuantity(),
			IsUnavailable:     item.IsUnavailable(),
			Notes:             item.Notes(),
		})
	}
	return out
}

func summaryFromDomain(s order.PreparationSummary) PreparationSummary {
	return PreparationSummary{
		Items:           s.Items,
		Fulfilled:       s.Fulfilled,
		Short:           s.Short,
		Unavailable:     s.Unavailable,
		RequestedTotal:  s.RequestedTotal,
		AvailableTotal:  s.AvailableTotal,
		FulfillmentRate: s.FulfillmentRate.StringFixed(2),
	}
}

func historyFromViews(entries []queries.HistoryEntryView) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			Id:         e.ID.Bytes(),
			Kind:       string(e.Kind),
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorId:    e.ActorID.Bytes(),
			OccurredAt: e.OccurredAt,
			Note:       e.Note,
		})
	}
	return out
}

func reportFromQuery(r queries.UnavailableItemsReport) UnavailableItemsReport {
	rows := make([]UnavailableItem, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, UnavailableItem{
			OrderId:           row.OrderID.Bytes(),
			OrderNumber:       row.OrderNumber,
			ItemId:            row.ItemID.Bytes(),
			ItemName:          row.ItemName,
			Unit:              row.Unit,
			RequestedQuantity: row.RequestedQuantity,
			AvailableQuantity: row.AvailableQuantity,
			IsUnavailable:     row.IsUnavailable,
			IsShortage:        row.IsShortage,
			Notes:             row.Notes,
			ActorId:           row.ActorID.Bytes(),
			WarehouseId:       row.WarehouseID.Bytes(),
			PreparedAt:        row.PreparedAt,
		})
	}

	return UnavailableItemsReport{
		Rows: rows,
		Totals: ReportTotals{
			Rows:            r.Totals.Rows,
			Unavailable:     r.Totals.Unavailable,
			Short:           r.Totals.Short,
			RequestedTotal:  r.Totals.RequestedTotal,
			AvailableTotal:  r.Totals.AvailableTotal,
			FulfillmentRate: r.Totals.FulfillmentRate.StringFixed(2),
		},
	}
}
