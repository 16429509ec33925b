package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "error with wrapped error",
			appError: NewNetworkError("GET https://example.com", errors.New("connection refused")),
			expected: "network: GET https://example.com: connection refused",
		},
		{
			name:     "error without wrapped error",
			appError: NewInputError("URL is required", nil),
			expected: "input: URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	err := NewInputError("bad url", ErrInvalidURL)

	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeInput}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeNetwork}))

	wrapped := fmt.Errorf("sending: %w", err)
	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrorTypeInput, appErr.Type)
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"input", NewInputError("URL is required", ErrEmptyURL), "Input error: URL is required"},
		{"network", NewNetworkError("timeout", nil), "Request failed: timeout"},
		{"history", NewHistoryError("cannot save", nil), "History error: cannot save"},
		{"config", NewConfigError("bad timeout", nil), "Config error: bad timeout"},
		{"sentinel", ErrEmptyURL, "Error: Enter a URL before sending."},
		{"wrapped sentinel", fmt.Errorf("x: %w", ErrUnsupportedMethod), "Error: Supported methods are GET, POST, PUT, PATCH and DELETE."},
		{"unknown", errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
