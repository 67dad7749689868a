package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
)

func TestNewRetryDeadLetterCommand_ValidInput(t *testing.T) {
	eventID := kernel.NewUUID()
	cmd, err := commands.NewRetryDeadLetterCommand(eventID, "payment-notifier")
	require.NoError(t, err)
	assert.Equal(t, eventID, cmd.EventID())
	assert.Equal(t, "payment-notifier", cmd.HandlerID())
}

func TestNewRetryDeadLetterCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewRetryDeadLetterCommand(kernel.UUID{}, "payment-notifier")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewRetryDeadLetterCommand(kernel.NewUUID(), "")
	assert.ErrorIs(t, err, commands.ErrHandlerIDIsRequired)
}

func TestRetryDeadLetterCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	eventID := kernel.NewUUID()
	cmd, _ := commands.NewRetryDeadLetterCommand(eventID, "payment-notifier")

	record, err := retry.NewRecord(eventID, "payment-notifier")
	require.NoError(t, err)

	retrier := new(MockDeadLetterRetrier)
	retrier.On("RetryDeadLetter", ctx, eventID, "payment-notifier").Return(record, nil).Once()

	h := commands.NewRetryDeadLetterCommandHandler(retrier)
	require.NoError(t, h.Handle(ctx, cmd))
	retrier.AssertExpectations(t)
}

func TestRetryDeadLetterCommandHandler_Handle_NotDeadLettered(t *testing.T) {
	ctx := t.Context()
	eventID := kernel.NewUUID()
	cmd, _ := commands.NewRetryDeadLetterCommand(eventID, "payment-notifier")

	retrier := new(MockDeadLetterRetrier)
	retrier.On("RetryDeadLetter", ctx, eventID, "payment-notifier").
		Return(nil, retry.ErrNotDeadLettered).Once()

	h := commands.NewRetryDeadLetterCommandHandler(retrier)
	err := h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, retry.ErrNotDeadLettered)
}

func TestRetryDeadLetterCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewRetryDeadLetterCommandHandler(new(MockDeadLetterRetrier))
	err := h.Handle(t.Context(), commands.RetryDeadLetterCommand{})
	require.Error(t, err)
}
