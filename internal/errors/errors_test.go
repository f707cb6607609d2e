package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid format", NewInvalidFormatError("Invalid image format.", nil), http.StatusBadRequest},
		{"too large", NewResolutionTooLargeError("too big", 5000, 10), http.StatusRequestEntityTooLarge},
		{"internal", NewInternalError(errors.New("disk full")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("outer: %w", NewInvalidFormatError("bad", nil)), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatusCode(tt.err); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNewInternalError_EmbedsCause(t *testing.T) {
	err := NewInternalError(errors.New("disk full"))
	if err.Message != "Internal error: disk full" {
		t.Errorf("Unexpected message: %q", err.Message)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected Error() to contain cause, got %q", err.Error())
	}
}

func TestAsAppError(t *testing.T) {
	original := NewResolutionTooLargeError("too big", 4001, 1)
	if got := AsAppError(fmt.Errorf("wrap: %w", original)); got != original {
		t.Error("Expected wrapped AppError to be returned as-is")
	}

	got := AsAppError(errors.New("boom"))
	if got.Type != ErrorTypeInternal {
		t.Errorf("Expected internal type, got %s", got.Type)
	}
	if !IsType(got, ErrorTypeInternal) {
		t.Error("Expected IsType to report internal")
	}
}
