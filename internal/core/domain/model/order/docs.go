// Package order provides the Order aggregate of the supply ordering service:
// a department's request for items, routed to a warehouse, prepared against
// actual stock and delivered by a driver.
//
// The package includes:
//   - Order: the aggregate root owning line items, lifecycle and pending history
//   - Item and ItemDraft: line items and their submitted form, with the
//     name/itemName aliases resolved at the boundary
//   - Status: the lifecycle graph with its role gates
//   - PreparedItems: the preparation worksheet reconciling requested and
//     available quantities
//   - PreparationSummary: counts and fulfillment rate of a committed worksheet
//
// Key business rules:
//   - PENDING -> APPROVED | REJECTED -> PREPARING -> READY -> DELIVERED, and no other edge
//   - warehouse staff approve, reject, prepare and mark ready; drivers deliver
//   - PREPARING is only entered by committing a worksheet with at least one
//     available item; shortages are flagged, never rejected
//   - items may change only while PENDING or APPROVED
package order
