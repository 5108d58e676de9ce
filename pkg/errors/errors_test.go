package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeParse, "bad record"),
			expected: "[PARSE_ERROR] bad record",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeInputTransport, "read failed", errors.New("connection reset")),
			expected: "[INPUT_TRANSPORT_ERROR] read failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeOutputTransport, "write failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeParse, "error 1")
	err2 := New(CodeParse, "error 2")
	err3 := New(CodeInputTransport, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsInputTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"input transport error", ErrInputTransport, true},
		{"wrapped input transport error", Wrap(CodeInputTransport, "read failed", errors.New("eof")), true},
		{"other error", ErrParse, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInputTransportError(tt.err))
		})
	}
}

func TestIsParseError(t *testing.T) {
	assert.True(t, IsParseError(ErrParse))
	assert.False(t, IsParseError(ErrInputTransport))
}

func TestIsOutputTransportError(t *testing.T) {
	assert.True(t, IsOutputTransportError(ErrOutputTransport))
	assert.False(t, IsOutputTransportError(ErrParse))
}

func TestIsSubscriberWriteError(t *testing.T) {
	assert.True(t, IsSubscriberWriteError(ErrSubscriberWrite))
	assert.False(t, IsSubscriberWriteError(ErrParse))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeParse, "bad json"),
			expected: CodeParse,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeSubscriberWrite, "dropped", errors.New("inner")),
			expected: CodeSubscriberWrite,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeParse, "not valid json"),
			expected: "not valid json",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
