package colorkit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCategory_String(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{ErrorCategoryUnknown, "unknown"},
		{ErrorCategoryParse, "parse"},
		{ErrorCategoryArgument, "argument"},
		{ErrorCategoryScript, "script"},
		{ErrorCategoryConfig, "config"},
		{ErrorCategoryIO, "io"},
		{ErrorCategory(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.category.String(); got != tt.want {
				t.Errorf("ErrorCategory.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorSeverity_String(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{ErrorSeverity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("ErrorSeverity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategorizedError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := NewCategorizedError(errors.New("bad thing"), ErrorCategoryArgument, SeverityWarning)
		if got, want := err.Error(), "[warning/argument] bad thing"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("Error with input context", func(t *testing.T) {
		err := NewCategorizedError(ErrInvalidColor, ErrorCategoryParse, SeverityError).
			WithContext("input", "#zz")
		if got, want := err.Error(), `[error/parse] invalid color: "#zz"`; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("nil underlying error", func(t *testing.T) {
		err := &CategorizedError{Category: ErrorCategoryIO}
		if !strings.Contains(err.Error(), "no error") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := NewCategorizedError(ErrInvalidArgument, ErrorCategoryArgument, SeverityError)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Error("errors.Is did not find the wrapped sentinel")
		}
		wrapped := fmt.Errorf("outer: %w", err)
		var ce *CategorizedError
		if !errors.As(wrapped, &ce) {
			t.Fatal("errors.As failed through fmt wrapping")
		}
		if ce.Timestamp.IsZero() {
			t.Error("Timestamp not set")
		}
	})

	t.Run("WithContext on zero value", func(t *testing.T) {
		err := (&CategorizedError{}).WithContext("k", "v")
		if err.Context["k"] != "v" {
			t.Errorf("Context = %v", err.Context)
		}
	})
}

func TestCategoryOf(t *testing.T) {
	if got := CategoryOf(errors.New("plain")); got != ErrorCategoryUnknown {
		t.Errorf("CategoryOf(plain) = %v", got)
	}
	if got := CategoryOf(nil); got != ErrorCategoryUnknown {
		t.Errorf("CategoryOf(nil) = %v", got)
	}
	err := fmt.Errorf("load: %w", NewCategorizedError(errors.New("x"), ErrorCategoryConfig, SeverityError))
	if got := CategoryOf(err); got != ErrorCategoryConfig {
		t.Errorf("CategoryOf(config) = %v", got)
	}
}
