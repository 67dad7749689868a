package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRetryDeadLetterCommandIsNotConstructed = errors.New(
		"RetryDeadLetterCommand must be created via NewRetryDeadLetterCommand constructor",
	)
	ErrHandlerIDIsRequired = errors.New("handler id is required")
)

// RetryDeadLetterCommand represents an operator's request to re-enter a
// dead-lettered delivery into the retry loop with a fresh attempt budget.
type RetryDeadLetterCommand struct { //nolint:recvcheck //using for validation
	eventID   kernel.UUID
	handlerID string

	guard guard.ConstructorGuard
}

// NewRetryDeadLetterCommand creates a command to retry a dead-lettered
// delivery, identified by the event and the handler that kept failing.
func NewRetryDeadLetterCommand(eventID kernel.UUID, handlerID string) (RetryDeadLetterCommand, error) {
	cmd := RetryDeadLetterCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEventID(eventID),
		cmd.setHandlerID(handlerID),
	); err != nil {
		return RetryDeadLetterCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryDeadLetterCommand) Validate() error {
	return c.guard.Validate(ErrRetryDeadLetterCommandIsNotConstructed)
}

// EventID returns the identifier of the event whose delivery dead-lettered.
func (c RetryDeadLetterCommand) EventID() kernel.UUID {
	return c.eventID
}

// HandlerID returns the identifier of the handler that kept failing.
func (c RetryDeadLetterCommand) HandlerID() string {
	return c.handlerID
}

func (c *RetryDeadLetterCommand) setEventID(eventID kernel.UUID) error {
	if err := eventID.Validate(); err != nil {
		return err
	}

	c.eventID = eventID
	return nil
}

func (c *RetryDeadLetterCommand) setHandlerID(handlerID string) error {
	if handlerID == "" {
		return ErrHandlerIDIsRequired
	}

	c.handlerID = handlerID
	return nil
}
