// Package dispatch provides the event delivery machinery of the order
// lifecycle engine: the handler registry, the dispatcher and the retry
// coordinator.
//
// Publishing an event is complete once it is durably stored; delivery to
// handlers is a separate, decoupled phase with at-least-once semantics.
// Handlers for the same event run in registration order; events have no
// ordering guarantee relative to each other. Handler failures never reach
// the command that produced the event: they are retried with exponential
// backoff and eventually dead-lettered for manual intervention.
package dispatch
