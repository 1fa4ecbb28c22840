package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %s", "bmp")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidFormat)
	}
	if err.Message != "invalid format: bmp" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}

	want := "INVALID_FORMAT: invalid format: bmp"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeEncode, cause, "encode %s", "png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	want := "ENCODE_ERROR: encode png: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "snap not found")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeEncode) {
		t.Error("Is should not match a different code")
	}

	// Works through wrapping with %w
	wrapped := fmt.Errorf("loading history: %w", err)
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("Is should unwrap the chain")
	}

	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStore, "boom")); got != ErrCodeStore {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeStore)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSnap, "text too long")
	if got := UserMessage(err); got != "text too long" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidInput, true},
		{ErrCodeInvalidFormat, true},
		{ErrCodeInvalidSnap, true},
		{ErrCodeInvalidTheme, true},
		{ErrCodeNotFound, false},
		{ErrCodeEncode, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		if got := IsValidation(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsValidation(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
