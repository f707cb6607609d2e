package analyzer

import (
	"go-crowd-monitor/pkg/models"
)

// AnalysisResult is an alias to the shared models.AnalysisResult
type AnalysisResult = models.AnalysisResult

// Result messages
const (
	InvalidFormatMessage = "Invalid image format."
	CompletedMessage     = "Crowd analysis completed."
)
