package repository

import "errors"

var (
	// ErrAnalysisNotFound indicates the analysis record was not found
	ErrAnalysisNotFound = errors.New("analysis record not found")

	// ErrRepositoryUnavailable indicates no history store is configured
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
