// Package accessgrants implements the standing access-control list inside
// HealthPass.
//
// Layering:
// - domain: grant entity, invariants, errors
// - application: owner-checked grant/revoke commands, checks, outbox workers
// - ports: stable boundaries for persistence, ordering, events, projections
// - adapters: concrete HTTP, memory, postgres, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - A grant is a standing, non-expiring, type-unscoped permission keyed by
//   (owner, accessor); set and unset are idempotent overwrites.
// - Every mutation writes an outbox row in the same store mutation; the relay
//   worker publishes granted/revoked envelopes for read-side projections,
//   which fold them in commit order with last write per key winning.
package accessgrants
