package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-crowd-monitor/internal/analyzer"
	"go-crowd-monitor/internal/observer"
	"go-crowd-monitor/internal/repository"
	"go-crowd-monitor/pkg/models"
)

// CrowdMonitorService defines the application-level crowd analysis operations
type CrowdMonitorService interface {
	// Analyze runs one crowd analysis. Failures are reported in the result.
	Analyze(ctx context.Context, inputLocation, outputLocation string) models.AnalysisResult

	// History returns the most recent stored analyses, newest first
	History(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)

	// Stats returns counters collected since startup
	Stats() map[string]interface{}
}

// crowdMonitorService implements CrowdMonitorService
type crowdMonitorService struct {
	analyzer  analyzer.CrowdAnalyzer
	publisher observer.Subject
	metrics   *observer.MetricsObserver
	history   repository.AnalysisRepository
}

// NewCrowdMonitorService creates a new crowd monitor service. history may be
// nil, in which case History reports ErrRepositoryUnavailable.
func NewCrowdMonitorService(
	crowdAnalyzer analyzer.CrowdAnalyzer,
	publisher observer.Subject,
	metrics *observer.MetricsObserver,
	history repository.AnalysisRepository,
) CrowdMonitorService {
	return &crowdMonitorService{
		analyzer:  crowdAnalyzer,
		publisher: publisher,
		metrics:   metrics,
		history:   history,
	}
}

// Analyze implements CrowdMonitorService
func (s *crowdMonitorService) Analyze(ctx context.Context, inputLocation, outputLocation string) models.AnalysisResult {
	event := observer.AnalysisEvent{
		EventType:      observer.AnalysisStarted,
		AnalysisID:     uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		InputLocation:  inputLocation,
		OutputLocation: outputLocation,
	}
	s.publisher.NotifyObservers(ctx, event)

	start := time.Now()
	result := s.analyzer.Analyze(ctx, inputLocation, outputLocation)

	event.EventType = observer.AnalysisCompleted
	if !result.Succeeded() {
		event.EventType = observer.AnalysisFailed
	}
	event.Timestamp = time.Now().UTC()
	event.ProcessingTime = time.Since(start)
	event.Result = &result
	s.publisher.NotifyObservers(ctx, event)

	return result
}

// History implements CrowdMonitorService
func (s *crowdMonitorService) History(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	if s.history == nil {
		return nil, repository.ErrRepositoryUnavailable
	}
	return s.history.List(ctx, limit)
}

// Stats implements CrowdMonitorService
func (s *crowdMonitorService) Stats() map[string]interface{} {
	if s.metrics == nil {
		return map[string]interface{}{}
	}
	return s.metrics.GetMetrics()
}
