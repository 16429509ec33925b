package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyURL          = errors.New("URL is empty")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrInvalidJSON       = errors.New("invalid JSON")
	ErrHistoryCorrupt    = errors.New("history file is not a JSON array")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnknownBackend    = errors.New("unknown history backend")
	ErrNoResponse        = errors.New("no response yet")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeHistory ErrorType = "history"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewInputError creates an error for bad user input (URL, method, body)
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewNetworkError creates an error for a failed HTTP round trip
func NewNetworkError(message string, err error) *AppError {
	return newError(ErrorTypeNetwork, message, err)
}

// NewHistoryError creates an error for history storage
func NewHistoryError(message string, err error) *AppError {
	return newError(ErrorTypeHistory, message, err)
}

// NewParsingError creates an error for JSON parsing
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewConfigError creates an error for configuration loading and validation
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewOutputError creates an error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a single line suitable for a status bar or CLI exit
func UserFriendlyError(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeNetwork:
			if appErr.Err != nil {
				return fmt.Sprintf("Request failed: %s (%v)", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Request failed: %s", appErr.Message)
		case ErrorTypeHistory:
			return fmt.Sprintf("History error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrEmptyURL):
		return "Error: Enter a URL before sending."
	case errors.Is(err, ErrInvalidURL):
		return "Error: The URL could not be parsed."
	case errors.Is(err, ErrUnsupportedMethod):
		return "Error: Supported methods are GET, POST, PUT, PATCH and DELETE."
	case errors.Is(err, ErrInvalidJSON):
		return "Error: The text is not valid JSON."
	case errors.Is(err, ErrNoResponse):
		return "Error: Send a request first."
	}

	return fmt.Sprintf("Error: %v", err)
}
