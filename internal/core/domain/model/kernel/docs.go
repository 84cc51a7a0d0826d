// Package kernel provides the domain primitives shared by every aggregate of
// the supply ordering service.
//
// The package includes:
//   - UUID: an immutable identifier value object
//   - Role and Actor: the caller identity passed explicitly into every command
//     and query, replacing any ambient session state
package kernel
