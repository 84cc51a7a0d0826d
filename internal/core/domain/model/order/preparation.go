package order

import (
	"errors"
	"fmt"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrNoItemAvailable rejects a preparation in which every item is unavailable.
var ErrNoItemAvailable = errors.New("at least one item must be available")

// PreparedItem is the working record a warehouse operator fills in for one
// order item. An unavailable item always has zero available quantity.
type PreparedItem struct {
	itemID            kernel.UUID
	name              string
	unit              Unit
	requestedQuantity int
	availableQuantity int
	isUnavailable     bool
	notes             string
}

func (p PreparedItem) ItemID() kernel.UUID { return p.itemID }
func (p PreparedItem) Name() string { return p.name }
func (p PreparedItem) Unit() Unit { return p.unit }
func (p PreparedItem) RequestedQuantity() int { return p.requestedQuantity }
func (p PreparedItem) AvailableQuantity() int { return p.availableQuantity }
func (p PreparedItem) IsUnavailable() bool { return p.isUnavailable }
func (p PreparedItem) Notes() string { return p.notes }

// IsShortage reports 0 < available < requested. It is advisory only.
func (p PreparedItem) IsShortage() bool {
	return IsShortage(p.availableQuantity, p.requestedQuantity, p.isUnavailable)
}

// PreparedItems is the preparation worksheet of an order, one entry per order
// item in display order.
type PreparedItems []PreparedItem

// PreparationInput is what an operator submits for one worksheet line.
// ItemID is optional; when set it must match the line's item.
type PreparationInput struct {
	ItemID            *kernel.UUID
	AvailableQuantity int
	IsUnavailable     bool
	Notes             string
}

func seedPreparation(items []*Item) PreparedItems {
	worksheet := make(PreparedItems, 0, len(items))
	for _, item := range items {
		worksheet = append(worksheet, PreparedItem{
			itemID:            item.id,
			name:              item.name,
			unit:              item.unit,
			requestedQuantity: item.requestedQuantity,
			availableQuantity: item.requestedQuantity,
		})
	}
	return worksheet
}

// SetAvailability records how much of line index the warehouse can supply.
// Negative input is clamped to 0 and input above the request to the request.
// A positive quantity clears the unavailable flag.
func (p PreparedItems) SetAvailability(index, quantity int) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}

	item := &p[index]
	item.availableQuantity = max(0, min(quantity, item.requestedQuantity))
	if item.availableQuantity > 0 {
		item.isUnavailable = false
	}
	return nil
}

// MarkUnavailable toggles the unavailable flag of line index. Setting it zeroes
// the available quantity; clearing it resets the quantity to the full request,
// discarding any partial value entered before.
func (p PreparedItems) MarkUnavailable(index int, flag bool) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}

	item := &p[index]
	item.isUnavailable = flag
	if flag {
		item.availableQuantity = 0
	} else {
		item.availableQuantity = item.requestedQuantity
	}
	return nil
}

// SetNotes attaches an operator remark to line index.
func (p PreparedItems) SetNotes(index int, notes string) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p[index].notes = strings.TrimSpace(notes)
	return nil
}

// Apply replays operator input line by line onto the worksheet.
func (p PreparedItems) Apply(inputs []PreparationInput) error {
	if len(inputs) != len(p) {
		return errs.NewValueIsInvalidErrorWithCause("items",
			fmt.Errorf("expected %d prepared items, got %d", len(p), len(inputs)))
	}

	for i, in := range inputs {
		if in.ItemID != nil && !in.ItemID.IsEqual(p[i].itemID) {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].itemId", i),
				fmt.Errorf("%s does not match item %s", in.ItemID, p[i].itemID))
		}

		var err error
		if in.IsUnavailable {
			err = p.MarkUnavailable(i, true)
		} else {
			err = errors.Join(p.MarkUnavailable(i, false), p.SetAvailability(i, in.AvailableQuantity))
		}
		if err != nil {
			return err
		}
		if err = p.SetNotes(i, in.Notes); err != nil {
			return err
		}
	}
	return nil
}

// Shortages returns the indexes of partially fulfilled lines.
func (p PreparedItems) Shortages() []int {
	indexes := make([]int, 0)
	for i, item := range p {
		if item.IsShortage() {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// AllUnavailable reports whether no line can be fulfilled.
func (p PreparedItems) AllUnavailable() bool {
	for _, item := range p {
		if !item.isUnavailable && item.availableQuantity > 0 {
			return false
		}
	}
	return true
}

// normalized returns a copy in which lines with nothing available are flagged unavailable.
func (p PreparedItems) normalized() PreparedItems {
	out := make(PreparedItems, len(p))
	copy(out, p)
	for i := range out {
		if out[i].availableQuantity <= 0 {
			out[i].availableQuantity = 0
			out[i].isUnavailable = true
		}
	}
	return out
}

func (p PreparedItems) matches(items []*Item) error {
	if len(p) != len(items) {
		return errs.NewValueIsInvalidErrorWithCause("items",
			fmt.Errorf("expected %d prepared items, got %d", len(items), len(p)))
	}
	for i, item := range items {
		if !p[i].itemID.IsEqual(item.id) {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i),
				fmt.Errorf("prepared item %s does not match order item %s", p[i].itemID, item.id))
		}
	}
	return nil
}

func (p PreparedItems) checkIndex(index int) error {
	if index < 0 || index >= len(p) {
		return errs.NewValueIsOutOfRangeError("index", index, 0, len(p)-1)
	}
	return nil
}

// PreparationSummary aggregates a committed worksheet.
type PreparationSummary struct {
	Items          int
	Fulfilled      int
	Short          int
	Unavailable    int
	RequestedTotal int
	AvailableTotal int
	// FulfillmentRate is AvailableTotal as a percentage of RequestedTotal, rounded to 2 places.
	FulfillmentRate decimal.Decimal
}

// Summarize counts fulfilled, short and unavailable lines of a worksheet.
func Summarize(items PreparedItems) PreparationSummary {
	summary := PreparationSummary{Items: len(items)}
	for _, item := range items {
		summary.RequestedTotal += item.requestedQuantity
		summary.AvailableTotal += item.availableQuantity
		switch {
		case item.isUnavailable || item.availableQuantity == 0:
			summary.Unavailable++
		case item.IsShortage():
			summary.Short++
		default:
			summary.Fulfilled++
		}
	}

	summary.FulfillmentRate = FulfillmentRate(summary.RequestedTotal, summary.AvailableTotal)
	return summary
}

// FulfillmentRate is available as a percentage of requested, rounded to 2
// places. It is zero when nothing was requested.
func FulfillmentRate(requested, available int) decimal.Decimal {
	if requested <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(available)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(requested)), 2)
}

func (s PreparationSummary) String() string {
	return fmt.Sprintf("%d items: %d fulfilled, %d short, %d unavailable (fulfillment %s%%)",
		s.Items, s.Fulfilled, s.Short, s.Unavailable, s.FulfillmentRate.StringFixed(2))
}
