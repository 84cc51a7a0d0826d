// Package queries contains the read side of the supply ordering service.
// Handlers read straight from PostgreSQL through GORM's raw SQL and return
// flat views; no aggregate is loaded. Every actor-facing query applies the
// actor's role scope itself.
package queries

import (
	"strings"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
)

// OrderFilter is a conjunction of optional constraints. A nil field imposes
// no constraint.
type OrderFilter struct {
	Status       *order.Status
	DepartmentID *kernel.UUID
	WarehouseID  *kernel.UUID
	CreatedBy    *kernel.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

// NewOrderFilter builds a filter from raw request values. Empty and
// unparsable values mean "no filter" rather than a literal match.
//
// Dates accept RFC 3339 timestamps or plain 2006-01-02 days. A plain dateTo
// covers the whole day.
func NewOrderFilter(status, departmentID, warehouseID, createdBy, dateFrom, dateTo string) OrderFilter {
	f := OrderFilter{
		DepartmentID: parseOptionalID(departmentID),
		WarehouseID:  parseOptionalID(warehouseID),
		CreatedBy:    parseOptionalID(createdBy),
		DateFrom:     parseOptionalTime(dateFrom, false),
		DateTo:       parseOptionalTime(dateTo, true),
	}
	if s, err := order.ParseStatus(strings.TrimSpace(status)); err == nil {
		f.Status = &s
	}
	return f
}

func (f OrderFilter) apply(p *predicates) {
	if f.Status != nil {
		p.add("o.status = ?", f.Status.String())
	}
	if f.DepartmentID != nil {
		p.add("o.department_id = ?", f.DepartmentID.Bytes())
	}
	if f.WarehouseID != nil {
		p.add("o.warehouse_id = ?", f.WarehouseID.Bytes())
	}
	if f.CreatedBy != nil {
		p.add("o.created_by = ?", f.CreatedBy.Bytes())
	}
	if f.DateFrom != nil {
		p.add("o.created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		p.add("o.created_at <= ?", *f.DateTo)
	}
}

func parseOptionalID(s string) *kernel.UUID {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil || id.Validate() != nil {
		return nil
	}
	return &id
}

func parseOptionalTime(s string, endOfDay bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return &t
}

// predicates collects SQL conditions joined with AND.
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}
