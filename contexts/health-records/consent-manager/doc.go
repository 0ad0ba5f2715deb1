// Package consentmanager implements time-bounded consent grants inside
// HealthPass.
//
// Layering:
// - domain: consent entity, invariants, errors
// - application: owner-checked give/revoke commands and validity checks
// - ports: stable boundaries for persistence and commit ordering
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - One consent entry per (owner, accessor); a new grant fully overwrites the
//   previous entry, including an earlier revocation.
// - Expiry is evaluated lazily at check time against the trusted clock; no
//   background process sweeps expired entries.
package consentmanager
