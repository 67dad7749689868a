package commands

import (
	"context"
)

// RetryDeadLetterCommandHandler resets a dead-lettered delivery so the retry
// sweep picks it up again. Only dead-lettered deliveries can be reset; the
// retrier rejects anything else.
type RetryDeadLetterCommandHandler struct {
	retrier DeadLetterRetrier
}

// NewRetryDeadLetterCommandHandler creates a handler for manual dead-letter
// retries.
func NewRetryDeadLetterCommandHandler(retrier DeadLetterRetrier) RetryDeadLetterCommandHandler {
	return RetryDeadLetterCommandHandler{
		retrier: retrier,
	}
}

// Handle processes the manual retry request.
func (h *RetryDeadLetterCommandHandler) Handle(ctx context.Context, cmd RetryDeadLetterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.retrier.RetryDeadLetter(ctx, cmd.EventID(), cmd.HandlerID())
	return err
}
