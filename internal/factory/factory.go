package factory

import (
	"fmt"

	"go-crowd-monitor/internal/analyzer"
	"go-crowd-monitor/internal/config"
	"go-crowd-monitor/internal/storage"
	"go-crowd-monitor/pkg/validation"
)

// CompositorFactory creates heatmap compositors
type CompositorFactory interface {
	CreateCompositor(kind string, options analyzer.Options) (analyzer.Compositor, error)
}

// StorageFactory creates the location router used by the analyzer
type StorageFactory interface {
	CreateStore(cfg *config.Config) (storage.ImageStore, error)
}

// compositorFactory implements CompositorFactory
type compositorFactory struct{}

// NewCompositorFactory creates a new compositor factory
func NewCompositorFactory() CompositorFactory {
	return &compositorFactory{}
}

// CreateCompositor creates a compositor based on the specified kind
func (f *compositorFactory) CreateCompositor(kind string, options analyzer.Options) (analyzer.Compositor, error) {
	switch kind {
	case config.CompositorNative, "":
		return analyzer.NewNativeCompositor(options.ImageWeight, options.OverlayWeight), nil
	case config.CompositorGoCV:
		return analyzer.NewGoCVCompositor(options.ImageWeight, options.OverlayWeight)
	default:
		return nil, fmt.Errorf("unsupported compositor: %s", kind)
	}
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStore builds a router serving local paths, read-only http(s) and,
// when credentials are configured, az:// blobs
func (f *storageFactory) CreateStore(cfg *config.Config) (storage.ImageStore, error) {
	router := storage.NewRouter()

	httpStore := storage.NewHTTPStore(cfg.FetchTimeout)
	router.Register(validation.SchemeHTTP, httpStore)
	router.Register(validation.SchemeHTTPS, httpStore)

	if cfg.AzureEnabled() {
		azureStore, err := storage.NewAzureStore(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure store: %w", err)
		}
		router.Register(validation.SchemeAzure, azureStore)
	}

	return router, nil
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	CompositorFactory CompositorFactory
	StorageFactory    StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		CompositorFactory: NewCompositorFactory(),
		StorageFactory:    NewStorageFactory(),
	}
}
