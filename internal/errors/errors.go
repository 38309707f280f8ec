// Package errors provides consistent error types for TalkDoc.
// It defines four main categories: ValidationError (bad user input),
// ConfigurationError (missing credential or endpoint), UpstreamError
// (external service returned failure), and ConnectivityError (external
// service unreachable).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrEmptySlot            = errors.New("slot is empty")
	ErrNoDaySelected        = errors.New("no day selected")
	ErrNoTimeSelected       = errors.New("no time selected")
	ErrInvalidSlot          = errors.New("invalid slot")
	ErrInvalidTime          = errors.New("invalid time")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrWebhookNotFound      = errors.New("webhook not found")
)

// ValidationError represents an error that the user can fix.
// Examples: empty item name, negative quantity, no day or time selected.
type ValidationError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message, suggestion string) *ValidationError {
	return &ValidationError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewValidationErrorWithField creates a new ValidationError with field context.
func NewValidationErrorWithField(field, value, message, suggestion string) *ValidationError {
	return &ValidationError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// ConfigurationError indicates a missing credential or endpoint for an
// external service. The Missing field names the environment variable.
type ConfigurationError struct {
	Service string
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured: missing %s", e.Service, e.Missing)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(service, missing string) *ConfigurationError {
	return &ConfigurationError{Service: service, Missing: missing}
}

// UpstreamError indicates that an external service was reachable but
// returned a failure. Body carries the upstream error text verbatim;
// FallbackBody carries the last error from an exhausted fallback chain.
type UpstreamError struct {
	Service      string
	Message      string
	StatusCode   int
	Body         string
	FallbackBody string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(service, message string) *UpstreamError {
	return &UpstreamError{Service: service, Message: message}
}

// ConnectivityError indicates that an external service could not be
// reached at all, as opposed to responding with a failure.
type ConnectivityError struct {
	Service  string
	Endpoint string
	Cause    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not connect to %s at %s", e.Service, e.Endpoint)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}

// NewConnectivityError creates a new ConnectivityError.
func NewConnectivityError(service, endpoint string, cause error) *ConnectivityError {
	return &ConnectivityError{Service: service, Endpoint: endpoint, Cause: cause}
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUpstream returns true if the error is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsConnectivity returns true if the error is a ConnectivityError.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// Suggestion extracts the fix-it suggestion from an error, if any.
func Suggestion(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Suggestion
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
