// Package retry provides the delivery-attempt domain model for the order
// lifecycle engine. Each (event, handler) pair gets one Record tracking its
// attempt count, backoff schedule and terminal dead-letter flag.
//
// Record state transitions:
//
//	Pending ──> InProgress ──┬──> Succeeded
//	   ^            ^        ├──> ScheduledRetry ──┘ (when due)
//	   │            │        └──> DeadLettered
//	   └────────────┴────────────────┘ (manual retry)
//
// Dead-lettered records are retained for inspection and can be re-entered
// into Pending through an explicit operator-triggered retry.
package retry
