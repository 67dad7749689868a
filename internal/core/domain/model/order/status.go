package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for a requested status change
// that is not in the transition table. No state change and no event are
// produced when a transition is rejected.
var ErrInvalidTransition = errors.New("invalid state transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table:
//
//	Pending ──┬──> Paid ──┬──> Processing ──> Shipped ──> Delivered
//	          │           └──> Cancelled
//	          ├──> Cancelled
//	          └──> Failed
//
// Delivered, Cancelled and Failed are terminal. Status is a value object;
// transition checks are pure, deterministic, and safe to call concurrently.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// Paid indicates payment has been captured for the order.
	Paid

	// Processing indicates the order is being prepared for shipment.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before shipping. Terminal.
	Cancelled

	// Failed indicates payment failed for a pending order. Terminal.
	Failed
)

// transitionTable holds the allowed target statuses per source status.
// Terminal statuses have no entry.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Paid, Cancelled, Failed},
		Paid:       {Processing, Cancelled},
		Processing: {Shipped},
		Shipped:    {Delivered},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Paid:       "Paid",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
		Failed:     "Failed",
	}
}

// StatusFromString parses a status name as used on the wire and in queries.
// Matching is exact. Returns Unknown and an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return fmt.Errorf("%d is not a valid order status", s)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	targets, ok := transitionTable()[s]
	return !ok || len(targets) == 0
}

// CanTransition reports whether the transition table allows moving from the
// current status to the target. Pure and side-effect free.
func (s Status) CanTransition(to Status) bool {
	for _, target := range transitionTable()[s] {
		if target == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is allowed by the
// table, or an InvalidTransitionError carrying both states if it is not.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransition(to) {
		return Unknown, NewInvalidTransitionError(s, to)
	}
	return to, nil
}

// InvalidTransitionError reports a rejected status change. It carries both
// the source and the requested target status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// source and target statuses.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
