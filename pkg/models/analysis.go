package models

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnalysisResult is the record returned for every crowd analysis call.
// Successful results carry HeatmapPath and CrowdEstimates, failed ones Code.
type AnalysisResult struct {
	Status         string         `json:"status"`
	Message        string         `json:"message"`
	HeatmapPath    string         `json:"heatmap_path,omitempty"`
	CrowdEstimates map[string]int `json:"crowd_estimates,omitempty"`
	Code           int            `json:"code,omitempty"`
}

// Succeeded reports whether the analysis completed
func (r AnalysisResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// AnalysisRecord is a finished analysis as kept in the history store
type AnalysisRecord struct {
	ID                string         `json:"id"`
	InputLocation     string         `json:"input_location"`
	OutputLocation    string         `json:"output_location"`
	Status            string         `json:"status"`
	Message           string         `json:"message"`
	Code              int            `json:"code,omitempty"`
	CrowdEstimates    map[string]int `json:"crowd_estimates,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
}
