package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/output"
)

func TestNewInMemory(t *testing.T) {
	opts := DefaultOptions()
	opts.InMemory = true

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.InventoryRepo)
	assert.NotNil(t, ctx.ReminderRepo)
	assert.NotNil(t, ctx.Center)
	assert.NotNil(t, ctx.Config)
	assert.False(t, ctx.IsJSON())
}

func TestNewHonorsDatabaseEnv(t *testing.T) {
	t.Setenv(config.EnvDatabase, ":memory:")

	ctx, err := New(DefaultOptions())
	require.NoError(t, err)
	defer ctx.Close()
	assert.NotNil(t, ctx.DB)
}

func TestIsJSON(t *testing.T) {
	opts := DefaultOptions()
	opts.InMemory = true
	opts.Format = output.FormatJSON

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()
	assert.True(t, ctx.IsJSON())
}

func TestGetSuggestion(t *testing.T) {
	assert.NotEmpty(t, GetSuggestion(errors.ErrEmptySlot))
	assert.NotEmpty(t, GetSuggestion(errors.ErrNoDaySelected))
	assert.Empty(t, GetSuggestion(errors.New("unknown")))

	// ValidationError suggestions come straight from the error
	ve := errors.NewValidationError("Bad input", "Try again")
	assert.Equal(t, "Try again", GetSuggestion(ve))
}

func TestFormatError(t *testing.T) {
	msg := FormatError(errors.ErrInvalidSlot)
	assert.Contains(t, msg, "invalid slot")
	assert.Contains(t, msg, "B1-B4")
}
