package services

import (
	"time"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"
)

// Reconciler is a stateless domain service for the preparation workflow.
//
// Example usage:
//
//	reconciler := services.NewReconciler()
//	worksheet, err := reconciler.BeginPreparation(o, actor)
//	...
//	result, err := reconciler.CommitPreparation(o, actor, inputs, "", time.Now())
//	// persist o and result.ItemLogs in one unit of work
type Reconciler struct{}

func NewReconciler() Reconciler {
	return Reconciler{}
}

// PreparationResult is the outcome of a committed preparation.
type PreparationResult struct {
	Summary order.PreparationSummary
	// Shortages are the indexes of partially supplied items.
	Shortages []int
	ItemLogs  []history.ItemLog
}

// BeginPreparation returns a worksheet with every item fully available.
// The order is not modified.
func (r Reconciler) BeginPreparation(o *order.Order, actor kernel.Actor) (order.PreparedItems, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.PreparationWorksheet(actor)
}

// CommitPreparation replays operator input onto a fresh worksheet, commits it
// to the order and builds one ItemLog per item. The order is left untouched
// when any step fails.
func (r Reconciler) CommitPreparation(
	o *order.Order,
	actor kernel.Actor,
	inputs []order.PreparationInput,
	notes string,
	now time.Time,
) (PreparationResult, error) {
	if err := o.Validate(); err != nil {
		return PreparationResult{}, err
	}

	if o.Status() != order.Approved {
		return PreparationResult{}, errs.NewInvalidStateError("commit preparation", o.Status().String())
	}

	worksheet, err := o.PreparationWorksheet(actor)
	if err != nil {
		return PreparationResult{}, err
	}

	if err = worksheet.Apply(inputs); err != nil {
		return PreparationResult{}, err
	}

	logs, err := r.itemLogs(o, worksheet, actor, now)
	if err != nil {
		return PreparationResult{}, err
	}

	summary, err := o.CommitPreparation(actor, worksheet, notes, now)
	if err != nil {
		return PreparationResult{}, err
	}

	return PreparationResult{
		Summary:   summary,
		Shortages: o.Shortages(),
		ItemLogs:  logs,
	}, nil
}

func (r Reconciler) itemLogs(
	o *order.Order,
	worksheet order.PreparedItems,
	actor kernel.Actor,
	now time.Time,
) ([]history.ItemLog, error) {
	warehouseID := o.WarehouseID()
	if warehouseID == nil {
		return nil, errs.NewValueIsRequiredError("warehouseId")
	}

	logs := make([]history.ItemLog, 0, len(worksheet))
	for _, item := range worksheet {
		log, err := history.NewItemLog(history.ItemLogRecord{
			OrderID:           o.ID(),
			OrderNumber:       o.Number(),
			ItemID:            item.ItemID(),
			ItemName:          item.Name(),
			Unit:              item.Unit().String(),
			RequestedQuantity: item.RequestedQuantity(),
			AvailableQuantity: item.AvailableQuantity(),
			IsUnavailable:     item.IsUnavailable(),
			Notes:             item.Notes(),
			ActorID:           actor.ID(),
			WarehouseID:       *warehouseID,
			PreparedAt:        now.UTC(),
		})
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
