// Package accessgateway merges the standing allow-list and time-bounded
// consent into a single read-authorization decision, and hosts the
// break-glass emergency path that bypasses both but is gated on a durable
// audit append.
package accessgateway
