// Package history holds the append-only audit records of the supply ordering
// service.
//
// The package includes:
//   - Entry: one record per status transition, preparation commit, item edit
//     or notes edit of an order
//   - ItemLog: one record per item of a committed preparation, used by the
//     unavailable-items report and the shortage digest
//
// Records are immutable once constructed and are never cascade-deleted with
// their order.
package history
