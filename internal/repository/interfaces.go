package repository

import (
	"context"

	"go-crowd-monitor/pkg/models"
)

// AnalysisRepository defines the interface for analysis history operations
type AnalysisRepository interface {
	// Save stores a finished analysis
	Save(ctx context.Context, record *models.AnalysisRecord) error

	// Get retrieves a stored analysis by id
	Get(ctx context.Context, id string) (*models.AnalysisRecord, error)

	// List returns the most recent analyses, newest first
	List(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)

	// Close releases the underlying store
	Close() error
}
