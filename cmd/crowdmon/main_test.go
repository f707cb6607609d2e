package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"go-crowd-monitor/pkg/models"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"MAX_IMAGE_WIDTH", "MAX_IMAGE_HEIGHT", "COMPOSITOR", "FETCH_TIMEOUT",
		"ANALYSIS_TIMEOUT", "RESULTS_DB", "AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_KEY"} {
		t.Setenv(key, "")
	}
}

func TestRun_Usage(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer

	if code := run(nil, &out); code != 2 {
		t.Errorf("Expected exit 2 without a command, got %d", code)
	}
	if code := run([]string{"serve"}, &out); code != 2 {
		t.Errorf("Expected exit 2 for an unknown command, got %d", code)
	}
	if code := run([]string{"analyze", "-input", "in.png"}, &out); code != 2 {
		t.Errorf("Expected exit 2 without -output, got %d", code)
	}
}

func TestRun_AnalyzeInvalidInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	var out bytes.Buffer

	code := run([]string{"analyze", "-input", filepath.Join(dir, "missing.png"), "-output", filepath.Join(dir, "out.png")}, &out)
	if code != 1 {
		t.Errorf("Expected exit 1 for an error record, got %d", code)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Expected JSON on stdout, got %q: %v", out.String(), err)
	}
	if result.Status != models.StatusError || result.Code != 400 {
		t.Errorf("Expected 400 error record, got %+v", result)
	}
}

func TestRun_HistoryWithoutDatabase(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer

	if code := run([]string{"history"}, &out); code != 1 {
		t.Errorf("Expected exit 1 when history is disabled, got %d", code)
	}
}

func TestRun_HistoryEmpty(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESULTS_DB", filepath.Join(t.TempDir(), "results.db"))
	var out bytes.Buffer

	if code := run([]string{"history", "-limit", "5"}, &out); code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	var records []*models.AnalysisRecord
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("Expected JSON array, got %q: %v", out.String(), err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
