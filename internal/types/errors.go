package types

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a missing or unusable credential. It is
// reported to the caller but is not fatal to analysis: it only disables
// the AI fixing step.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ErrNoAPIKey is returned by the AI fixer when no model credential is configured.
var ErrNoAPIKey = &ConfigurationError{Err: errors.New("OpenAI API key not configured")}

// ToolError wraps a linter or formatter subprocess failure. It is
// caught and logged where it occurs and never aborts the run.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError wraps an error from an external tool invocation.
func NewToolError(tool string, err error) error {
	return &ToolError{Tool: tool, Err: err}
}

// TransportError wraps a network or API failure when calling the model
// endpoint or the forge. The original content is always preserved
// alongside it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps an error from an external service call.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// ValidationError indicates a bad request from the caller, such as an
// empty snippet. Surfaced as a 4xx response in service mode.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
