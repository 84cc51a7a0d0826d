// Package services provides domain services of the supply ordering service:
// workflows that span the Order aggregate and its audit records.
//
// The package includes:
//   - Reconciler: runs a preparation, reconciling requested against available
//     quantities and producing the per-item audit logs
package services
