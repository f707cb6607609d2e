package container

import (
	"fmt"

	"go-crowd-monitor/internal/analyzer"
	"go-crowd-monitor/internal/config"
	"go-crowd-monitor/internal/factory"
	"go-crowd-monitor/internal/logger"
	"go-crowd-monitor/internal/observer"
	"go-crowd-monitor/internal/repository"
	"go-crowd-monitor/internal/service"
)

// Container holds all application dependencies
type Container struct {
	history repository.AnalysisRepository
	service service.CrowdMonitorService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory()

	options := analyzer.DefaultOptions().WithMaxResolution(cfg.MaxImageWidth, cfg.MaxImageHeight)

	compositor, err := components.CompositorFactory.CreateCompositor(cfg.Compositor, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create compositor: %w", err)
	}

	imageStore, err := components.StorageFactory.CreateStore(cfg)
	if err != nil {
		return nil, err
	}

	crowdAnalyzer := analyzer.NewCrowdAnalyzerWithComponents(imageStore, options, nil, nil, compositor)

	publisher := observer.NewEventPublisher(logger.Logger)
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	var history repository.AnalysisRepository
	if cfg.HistoryEnabled() {
		history, err = repository.NewSQLiteAnalysisRepository(cfg.ResultsDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open results db: %w", err)
		}
		publisher.Subscribe(observer.NewHistoryObserver(history, logger.Logger))
	}

	return &Container{
		history: history,
		service: service.NewCrowdMonitorService(crowdAnalyzer, publisher, metrics, history),
	}, nil
}

// Service returns the crowd monitor service
func (c *Container) Service() service.CrowdMonitorService {
	return c.service
}

// Close releases the history store, if any
func (c *Container) Close() error {
	if c.history == nil {
		return nil
	}
	return c.history.Close()
}
