package factory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-crowd-monitor/internal/analyzer"
	"go-crowd-monitor/internal/config"
	"go-crowd-monitor/internal/storage"
)

func TestCreateCompositor(t *testing.T) {
	f := NewCompositorFactory()

	if c, err := f.CreateCompositor(config.CompositorNative, analyzer.DefaultOptions()); err != nil || c == nil {
		t.Errorf("Expected native compositor, got %v, %v", c, err)
	}
	if _, err := f.CreateCompositor("vulkan", analyzer.DefaultOptions()); err == nil {
		t.Error("Expected error for unknown compositor")
	}
}

func TestCreateStore_WithoutAzure(t *testing.T) {
	cfg := &config.Config{FetchTimeout: time.Second}

	store, err := NewStorageFactory().CreateStore(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, err = store.Open(context.Background(), "az://container/blob.png")
	if !errors.Is(err, storage.ErrBackendUnavailable) {
		t.Errorf("Expected ErrBackendUnavailable for az:// without credentials, got %v", err)
	}

	err = store.Write(context.Background(), "https://example.com/out.png", nil)
	if !errors.Is(err, storage.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly for https output, got %v", err)
	}
}
