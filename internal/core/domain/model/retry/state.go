package retry

import "fmt"

// State represents the delivery lifecycle of one (event, handler) pair.
type State int

const (
	// Unknown represents an invalid or undefined state.
	Unknown State = iota

	// Pending means delivery has not been attempted yet.
	Pending

	// InProgress means an attempt is currently executing.
	InProgress

	// Succeeded means the handler processed the event. Terminal.
	Succeeded

	// ScheduledRetry means the last attempt failed and a later attempt is
	// scheduled; it moves back to InProgress when its eligible time arrives.
	ScheduledRetry

	// DeadLettered means the retry budget is exhausted. The record is parked
	// for manual intervention; no further automatic attempt occurs.
	DeadLettered
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		InProgress:     "InProgress",
		Succeeded:      "Succeeded",
		ScheduledRetry: "ScheduledRetry",
		DeadLettered:   "DeadLettered",
	}
}

// Validate checks if the State value is one of the defined delivery states.
func (s State) Validate() error {
	if s < Pending || s > DeadLettered {
		return fmt.Errorf("%d is not a valid retry state", s)
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe to call on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
