package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("quantity must be 0 or greater", "Enter a non-negative number")
	assert.Equal(t, "quantity must be 0 or greater", err.Error())
	assert.Equal(t, "Enter a non-negative number", Suggestion(err))
	assert.True(t, IsValidation(err))
	assert.False(t, IsUpstream(err))
}

func TestValidationErrorWithField(t *testing.T) {
	err := NewValidationErrorWithField("time", "13 PM", "invalid time", "Use a value like '8:05 AM' or '14:30'")
	assert.Equal(t, "invalid time: '13 PM'", err.Error())
	assert.Equal(t, "time", err.Field)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("chat assistant", "GROQ_API_KEY")
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
	assert.True(t, IsConfiguration(err))
}

func TestUpstreamError(t *testing.T) {
	err := &UpstreamError{Service: "elevenlabs", Message: "request failed", StatusCode: 401, Body: "unauthorized"}
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.True(t, IsUpstream(err))
	assert.False(t, IsConnectivity(err))
}

func TestConnectivityError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewConnectivityError("dispenser", "http://10.0.0.5:5000", cause)
	assert.Contains(t, err.Error(), "dispenser")
	assert.True(t, IsConnectivity(err))
	assert.ErrorIs(t, err, cause)
}

func TestWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("creating reminder: %w", ErrEmptySlot)
	assert.True(t, Is(err, ErrEmptySlot))
	assert.False(t, Is(err, ErrNoDaySelected))
}
