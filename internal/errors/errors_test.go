package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeBackend,
				Message: "list documents",
				Cause:   errors.New("status 500"),
			},
			want: "list documents: status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false, want true")
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "nothing"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("password", "Password must be at least 8 characters")
	if !IsValidation(err) {
		t.Fatalf("expected validation error")
	}
	if GetField(err) != "password" {
		t.Errorf("GetField() = %q, want password", GetField(err))
	}
	if GetMessage(fmt.Errorf("outer: %w", err)) != "Password must be at least 8 characters" {
		t.Errorf("GetMessage() did not unwrap")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, want: ErrCodeCanceled},
		{name: "app error", err: Unauthorized("no session"), want: ErrCodeUnauthorized},
		{name: "plain", err: errors.New("boom"), want: ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsNotFound(NotFound("x")) {
		t.Error("IsNotFound")
	}
	if !IsUnauthorized(Unauthorized("x")) {
		t.Error("IsUnauthorized")
	}
	if !IsInternal(Internal("x")) {
		t.Error("IsInternal")
	}
	if !IsBackend(Wrapf(errors.New("x"), ErrCodeBackend, "call %s", "/users")) {
		t.Error("IsBackend")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode on plain error should be empty")
	}
}
