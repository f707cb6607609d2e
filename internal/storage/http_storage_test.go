package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-crowd-monitor/pkg/validation"
)

func TestHTTPStore_Open(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectError   bool
		errorContains string
	}{
		{
			name:   "Success",
			status: http.StatusOK,
		},
		{
			name:          "Not found is not retried",
			status:        http.StatusNotFound,
			expectError:   true,
			errorContains: "status code 404",
		},
		{
			name:          "Server error is not retried",
			status:        http.StatusServiceUnavailable,
			expectError:   true,
			errorContains: "status code 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestCount := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestCount++
				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)
					w.Write([]byte(fmt.Sprintf("Error %d", tt.status)))
					return
				}
				w.Header().Set("Content-Type", "image/png")
				w.Write([]byte("image-bytes"))
			}))
			defer server.Close()

			store := NewHTTPStore(5 * time.Second)
			loc, err := validation.NewLocationValidator().Validate(server.URL + "/crowd.png")
			if err != nil {
				t.Fatalf("Failed to parse location: %v", err)
			}

			body, err := store.Open(context.Background(), loc)
			if requestCount != 1 {
				t.Errorf("Expected exactly 1 request, got %d", requestCount)
			}

			if tt.expectError {
				if err == nil {
					body.Close()
					t.Fatal("Expected error, but got none")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error to contain '%s', got: %s", tt.errorContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got: %s", err.Error())
			}
			defer body.Close()
			data, _ := io.ReadAll(body)
			if string(data) != "image-bytes" {
				t.Errorf("Unexpected body %q", data)
			}
		})
	}
}

func TestHTTPStore_WriteIsReadOnly(t *testing.T) {
	store := NewHTTPStore(time.Second)
	loc := validation.Location{Raw: "https://example.com/out.png", Scheme: validation.SchemeHTTPS}

	called := false
	err := store.Write(context.Background(), loc, func(w io.Writer) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
	if called {
		t.Error("Expected encoder not to be called")
	}
}
