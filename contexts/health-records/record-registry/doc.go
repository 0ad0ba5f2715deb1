// Package recordregistry implements the Record Registry inside HealthPass.
//
// Layering:
// - domain: record entity, invariants, errors
// - application: owner-scoped record commands/queries using explicit ports
// - ports: stable boundaries for persistence, commit ordering, id generation
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Records are immutable once committed; there is no update or delete path.
// - Only the owner principal can append to its own record partition.
// - This module never decides cross-principal authorization; the
//   access-gateway module owns that decision and reads records through a port.
package recordregistry
