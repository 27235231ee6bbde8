// Copyright 2025 The Healthcare Analytics Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

func sampleResults() (*haqcore.ValidationResults, []haqcore.Recommendation) {
	results := &haqcore.ValidationResults{
		Completeness: &haqcore.CompletenessResult{
			TotalRecords:      100,
			TotalColumns:      9,
			MissingByColumn:   map[string]haqcore.ColumnCompleteness{"patient_age": {Count: 5, Percentage: 5, IsCritical: true}},
			CompletenessScore: 95,
		},
		Overall: &haqcore.OverallResult{
			QualityScore: 92.5,
			DimensionScores: map[string]float64{
				"completeness": 95,
				"uniqueness":   100,
				"validity":     90,
				"consistency":  100,
				"accuracy":     77.5,
			},
			TotalRecommendations: 1,
			CriticalIssues:       1,
		},
	}
	recommendations := []haqcore.Recommendation{
		{
			Severity:       haqcore.SeverityHigh,
			Category:       "Completeness",
			Issue:          "Critical column 'patient_age' has 5 missing values",
			Recommendation: "Investigate and fill missing values in patient_age",
		},
	}
	return results, recommendations
}

func testWriter(t *testing.T) *Writer {
	t.Helper()
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "Reports"), filepath.Join(dir, "Logs"), nil)
	w.now = func() time.Time {
		return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	}
	return w
}

func TestExportAll(t *testing.T) {
	w := testWriter(t)
	results, recommendations := sampleResults()

	timestamp, err := w.ExportAll(results, recommendations, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timestamp != "20250310_143000" {
		t.Errorf("got timestamp %q, want 20250310_143000", timestamp)
	}

	for _, path := range []string{
		filepath.Join(w.reportsDir, "Data_Quality_Validation_20250310_143000.json"),
		filepath.Join(w.reportsDir, "Data_Quality_Report_20250310_143000.xlsx"),
		filepath.Join(w.logsDir, "Data_Quality_Summary_20250310_143000.txt"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected report file %s: %v", path, err)
		}
	}
}

func TestExportAllRejectsIncompleteRun(t *testing.T) {
	w := testWriter(t)

	if _, err := w.ExportAll(&haqcore.ValidationResults{}, nil, "run-1"); err == nil {
		t.Error("expected an error for results without an overall score")
	}
	if _, err := w.ExportAll(nil, nil, "run-1"); err == nil {
		t.Error("expected an error for nil results")
	}
}

func TestWriteJSON(t *testing.T) {
	w := testWriter(t)
	if err := os.MkdirAll(w.reportsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	results, recommendations := sampleResults()

	if err := w.WriteJSON(results, recommendations, "run-1", "20250310_143000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.reportsDir, "Data_Quality_Validation_20250310_143000.json"))
	if err != nil {
		t.Fatal(err)
	}

	var document struct {
		RunID           string                     `json:"run_id"`
		GeneratedAt     string                     `json:"generated_at"`
		Results         *haqcore.ValidationResults `json:"results"`
		Recommendations []haqcore.Recommendation   `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &document); err != nil {
		t.Fatalf("report is not valid json: %v", err)
	}

	if document.RunID != "run-1" {
		t.Errorf("got run id %q, want run-1", document.RunID)
	}
	if document.GeneratedAt != "2025-03-10 14:30:00" {
		t.Errorf("got generated at %q", document.GeneratedAt)
	}
	if document.Results == nil || document.Results.Overall.QualityScore != 92.5 {
		t.Errorf("round-tripped results are wrong: %+v", document.Results)
	}
	if len(document.Recommendations) != 1 || document.Recommendations[0].Severity != haqcore.SeverityHigh {
		t.Errorf("round-tripped recommendations are wrong: %+v", document.Recommendations)
	}
}

func TestWriteText(t *testing.T) {
	w := testWriter(t)
	if err := os.MkdirAll(w.logsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	results, recommendations := sampleResults()

	if err := w.WriteText(results, recommendations, "20250310_143000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.logsDir, "Data_Quality_Summary_20250310_143000.txt"))
	if err != nil {
		t.Fatal(err)
	}
	report := string(data)

	for _, want := range []string{
		"DATA QUALITY VALIDATION REPORT",
		"Report Generated: 2025-03-10 14:30:00",
		"Dataset Records: 100",
		"Overall Quality Score: 92.50%",
		"Completeness: 95.00%",
		"Accuracy: 77.50%",
		"RECOMMENDATIONS (1 total)",
		"1. [HIGH] Completeness",
		"Issue: Critical column 'patient_age' has 5 missing values",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	// dimension scores keep their fixed presentation order
	if strings.Index(report, "Completeness:") > strings.Index(report, "Accuracy:") {
		t.Error("dimension scores are out of order")
	}
}
