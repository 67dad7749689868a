package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	items := itemsFixture()

	cmd, err := commands.NewCreateOrderCommand(id, "user-1", "user@example.com", items, "key-1")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "user-1", cmd.UserID())
	assert.Equal(t, "user@example.com", cmd.Email())
	assert.Equal(t, items, cmd.Items())
	assert.Equal(t, "key-1", cmd.IdempotencyKey())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, "user-1", "user@example.com", itemsFixture(), "key-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyUserID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "user@example.com", itemsFixture(), "key-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUserIDIsRequired)
}

func TestNewCreateOrderCommand_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "no-at-sign", "@example.com", "user@"} {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-1", email, itemsFixture(), "key-1")
		require.Error(t, err, "email %q", email)
		assert.ErrorIs(t, err, commands.ErrEmailIsInvalid)
	}
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-1", "user@example.com", nil, "key-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_EmptyIdempotencyKey(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-1", "user@example.com", itemsFixture(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrIdempotencyKeyIsRequired)
}

func TestNewCreateOrderCommand_ItemsAreCopied(t *testing.T) {
	items := itemsFixture()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "user-1", "user@example.com", items, "key-1")
	require.NoError(t, err)

	extra, _ := order.NewItem("mug", 1, 8.0)
	items[0] = extra
	assert.NotEqual(t, items[0], cmd.Items()[0])
}
