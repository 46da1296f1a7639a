package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidMode, "unknown layout mode: %q", "spiral"), `INVALID_MODE: unknown layout mode: "spiral"`},
		{"wrap", Wrap(ErrCodeInvalidNetwork, errors.New("unexpected EOF"), "decode %s", "gut.json"), "INVALID_NETWORK: decode gut.json: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidNetwork, cause, "decode network")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeInvalidMode, "x"), ErrCodeInvalidMode, true},
		{"other code", New(ErrCodeInvalidMode, "x"), ErrCodeInvalidFormat, false},
		{"outermost code wins", Wrap(ErrCodeInvalidNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidNetwork, true},
		{"behind fmt wrap", fmt.Errorf("load network: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true},
		{"plain", errors.New("x"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidColorMode, "test"), ErrCodeInvalidColorMode},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid mode", New(ErrCodeInvalidMode, "x"), true},
		{"invalid network", New(ErrCodeInvalidNetwork, "x"), true},
		{"wrapped format", Wrap(ErrCodeInvalidFormat, errors.New("eof"), "x"), true},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"file not found", New(ErrCodeFileNotFound, "x"), false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.want {
				t.Errorf("IsInputError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidColorMode, "x"), http.StatusBadRequest},
		{New(ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{fmt.Errorf("render: %w", New(ErrCodeInvalidFormat, "x")), http.StatusBadRequest},
		{New(Code("SOMETHING_NEW"), "x"), http.StatusInternalServerError},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
