package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "unknown"
	CodeInternal Code = "internal"

	// Lookup and input errors
	CodeNotFound   Code = "not_found"
	CodeValidation Code = "validation"
	CodeConflict   Code = "conflict"

	// Tree maintenance errors
	CodeCyclicMove   Code = "cyclic_move"
	CodeMenuMismatch Code = "menu_mismatch"

	// Infrastructure errors
	CodeStoreUnavailable   Code = "store_unavailable"
	CodeRemoteFailed       Code = "remote_failed"
	CodeConfigurationError Code = "configuration_error"
	CodeSeedInvalid        Code = "seed_invalid"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// MessageOf returns the message of the first structured error in the chain,
// falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var structured Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	return err.Error()
}

// IsClientError reports whether the code describes a caller mistake rather
// than a server-side failure.
func IsClientError(code Code) bool {
	switch code {
	case CodeNotFound, CodeValidation, CodeConflict, CodeCyclicMove, CodeMenuMismatch:
		return true
	}
	return false
}
