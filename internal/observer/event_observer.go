package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-crowd-monitor/internal/repository"
	"go-crowd-monitor/pkg/models"
)

// AnalysisEvent represents an analysis event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	AnalysisID     string                 `json:"analysis_id"`
	Timestamp      time.Time              `json:"timestamp"`
	InputLocation  string                 `json:"input_location"`
	OutputLocation string                 `json:"output_location"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Result         *models.AnalysisResult `json:"result,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when analysis begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when analysis finishes successfully
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when analysis returns an error record
	AnalysisFailed EventType = "analysis_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":  event.EventType,
		"analysis_id": event.AnalysisID,
		"input":       event.InputLocation,
		"output":      event.OutputLocation,
	}

	if event.Result != nil {
		fields["processing_time_ms"] = event.ProcessingTime.Milliseconds()
		fields["status"] = event.Result.Status
		if event.Result.Code != 0 {
			fields["code"] = event.Result.Code
			fields["error"] = event.Result.Message
		}
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Debug("Crowd analysis started")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Crowd analysis event: completed")
	case AnalysisFailed:
		o.logger.WithFields(fields).Warn("Crowd analysis event: failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	failedAnalyses      int64
	failuresByCode      map[int]int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{failuresByCode: make(map[int]int64)}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalProcessingTime += event.ProcessingTime
	case AnalysisFailed:
		o.failedAnalyses++
		if event.Result != nil {
			o.failuresByCode[event.Result.Code]++
		}
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulAnalyses > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulAnalyses)
	}

	failures := make(map[int]int64, len(o.failuresByCode))
	for code, n := range o.failuresByCode {
		failures[code] = n
	}

	return map[string]interface{}{
		"total_analyses":        o.totalAnalyses,
		"successful_analyses":   o.successfulAnalyses,
		"failed_analyses":       o.failedAnalyses,
		"failures_by_code":      failures,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
	}
}

// HistoryObserver persists every finished analysis
type HistoryObserver struct {
	repo   repository.AnalysisRepository
	logger *logrus.Logger
}

// NewHistoryObserver creates an observer saving finished analyses to repo
func NewHistoryObserver(repo repository.AnalysisRepository, logger *logrus.Logger) Observer {
	return &HistoryObserver{repo: repo, logger: logger}
}

// OnEvent saves completed and failed analyses; save errors are logged only
func (o *HistoryObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	if event.Result == nil || (event.EventType != AnalysisCompleted && event.EventType != AnalysisFailed) {
		return
	}

	record := &models.AnalysisRecord{
		ID:                event.AnalysisID,
		InputLocation:     event.InputLocation,
		OutputLocation:    event.OutputLocation,
		Status:            event.Result.Status,
		Message:           event.Result.Message,
		Code:              event.Result.Code,
		CrowdEstimates:    event.Result.CrowdEstimates,
		Timestamp:         event.Timestamp,
		ProcessingTimeSec: event.ProcessingTime.Seconds(),
	}
	// Persist even when the analysis deadline already expired
	if err := o.repo.Save(context.WithoutCancel(ctx), record); err != nil {
		o.logger.WithError(err).WithField("analysis_id", event.AnalysisID).Error("Failed to save analysis history")
	}
}

// GetObserverName returns the observer name
func (o *HistoryObserver) GetObserverName() string {
	return "history_observer"
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *logrus.Logger
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(logger *logrus.Logger) *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event, in subscription order,
// on the calling goroutine
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		p.notify(ctx, observer, event)
	}
}

func (p *EventPublisher) notify(ctx context.Context, obs Observer, event AnalysisEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("observer", obs.GetObserverName()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
