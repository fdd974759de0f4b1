package validation

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/jamesp/lambdas/pkg/common/errors"
)

func checkResult(t *testing.T, err error, wantError bool) {
	t.Helper()
	if !wantError {
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
	if !stderrors.Is(err, errors.ErrInvalidConfiguration) {
		t.Error("validation errors should wrap ErrInvalidConfiguration")
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 4, false},
		{"one", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, ValidatePositive("workerpool", "workers", tt.value), tt.wantError)
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"positive value", 10.5, false},
		{"zero value", 0, false},
		{"small negative", -0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, ValidateNonNegative("bucket", "rate", tt.value), tt.wantError)
		})
	}
}

func TestValidateNonNegativeDuration(t *testing.T) {
	checkResult(t, ValidateNonNegativeDuration("shop", "delay", time.Second), false)
	checkResult(t, ValidateNonNegativeDuration("shop", "delay", 0), false)
	checkResult(t, ValidateNonNegativeDuration("shop", "delay", -time.Millisecond), true)
}

func TestValidateNotNil(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"non-nil int", 123, false},
		{"non-nil slice", []int{}, false},
		{"nil value", nil, true},
		{"typed nil pointer", (*int)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, ValidateNotNil("future", "pool", tt.value), tt.wantError)
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	checkResult(t, ValidateNotEmpty("shop", "name", "BestPrice"), false)
	checkResult(t, ValidateNotEmpty("shop", "name", " "), false)
	checkResult(t, ValidateNotEmpty("shop", "name", ""), true)
}

func TestValidateMinLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{"long enough", "my favorite product", false},
		{"exactly two", "ab", false},
		{"one byte", "a", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, ValidateMinLength("shop", "product", tt.value, 2), tt.wantError)
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	err := ValidatePositive("workerpool", "workers", -5)

	var valErr *errors.ValidationError
	if !stderrors.As(err, &valErr) {
		t.Fatal("could not extract ValidationError")
	}

	if valErr.Module != "workerpool" {
		t.Errorf("Module = %q, want %q", valErr.Module, "workerpool")
	}
	if valErr.Field != "workers" {
		t.Errorf("Field = %q, want %q", valErr.Field, "workers")
	}
	if valErr.Value != -5 {
		t.Errorf("Value = %v, want %v", valErr.Value, -5)
	}
	if valErr.Hint != "value must be greater than 0" {
		t.Errorf("Hint = %q, want %q", valErr.Hint, "value must be greater than 0")
	}

	err = ValidateNotEmpty("config", "product", "")
	if !stderrors.As(err, &valErr) {
		t.Fatal("could not extract ValidationError")
	}
	if valErr.Hint != "provide a non-empty product" {
		t.Errorf("Hint = %q, want %q", valErr.Hint, "provide a non-empty product")
	}
}
