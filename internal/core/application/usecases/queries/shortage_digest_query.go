package queries

import (
	"errors"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrShortageDigestQueryIsNotConstructed = errors.New(
		"ShortageDigestQuery must be created via NewShortageDigestQuery constructor",
	)
)

// ShortageDigestQuery aggregates preparation shortfalls per warehouse over
// [from, to). It has no actor; it backs the scheduled digest.
type ShortageDigestQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

func NewShortageDigestQuery(from, to time.Time) (ShortageDigestQuery, error) {
	if !from.Before(to) {
		return ShortageDigestQuery{}, errs.NewValueIsOutOfRangeError("to",
			to.Format(time.RFC3339), from.Format(time.RFC3339), "unbounded")
	}

	return ShortageDigestQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ShortageDigestQuery) Validate() error {
	return q.guard.Validate(ErrShortageDigestQueryIsNotConstructed)
}

func (q ShortageDigestQuery) From() time.Time {
	return q.from
}

func (q ShortageDigestQuery) To() time.Time {
	return q.to
}

// WarehouseShortages is one warehouse's line of the digest.
type WarehouseShortages struct {
	WarehouseID     kernel.UUID
	Orders          int
	Unavailable     int
	Short           int
	RequestedTotal  int
	AvailableTotal  int
	FulfillmentRate decimal.Decimal
}
