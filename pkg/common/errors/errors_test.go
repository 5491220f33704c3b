package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrDisposed", ErrDisposed, "resource is disposed"},
		{"ErrSchedulerStopped", ErrSchedulerStopped, "scheduler is stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViolationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ViolationError
		want string
	}{
		{
			name: "reentrancy with op",
			err:  &ViolationError{Kind: Reentrancy, Op: "OnNext"},
			want: "observer contract violation in OnNext: reentrancy detected",
		},
		{
			name: "terminated with op",
			err:  &ViolationError{Kind: AlreadyTerminated, Op: "OnCompleted"},
			want: "observer contract violation in OnCompleted: observer already terminated",
		},
		{
			name: "without op",
			err:  &ViolationError{Kind: Reentrancy},
			want: "observer contract violation: reentrancy detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsViolation(t *testing.T) {
	err := NewViolationError("OnNext", Reentrancy)
	if !IsViolation(err) {
		t.Error("expected violation")
	}
	if IsViolation(ErrDisposed) {
		t.Error("ErrDisposed is not a violation")
	}
	if IsViolation(nil) {
		t.Error("nil is not a violation")
	}

	wrapped := fmt.Errorf("dispatch failed: %w", err)
	if !IsViolation(wrapped) {
		t.Error("expected wrapped violation to be detected")
	}
	if got := ViolationOf(wrapped); got != Reentrancy {
		t.Errorf("got kind %v, want Reentrancy", got)
	}
}

func TestViolationOf_NonViolation(t *testing.T) {
	if got := ViolationOf(errors.New("plain")); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
