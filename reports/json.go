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
	"fmt"
	"os"
	"path/filepath"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

// validationDocument is the JSON report layout consumed by downstream
// tooling. Every value is a primitive or one level of mapping.
type validationDocument struct {
	RunID           string                       `json:"run_id"`
	GeneratedAt     string                       `json:"generated_at"`
	Results         *haqcore.ValidationResults   `json:"results"`
	Recommendations []haqcore.Recommendation     `json:"recommendations"`
}

// WriteJSON writes the full validation results to the reports directory.
func (w *Writer) WriteJSON(results *haqcore.ValidationResults, recommendations []haqcore.Recommendation, runID string, timestamp string) error {
	document := validationDocument{
		RunID:           runID,
		GeneratedAt:     w.now().Format("2006-01-02 15:04:05"),
		Results:         results,
		Recommendations: recommendations,
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation results: %w", err)
	}

	path := filepath.Join(w.reportsDir, fmt.Sprintf("Data_Quality_Validation_%s.json", timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write json report: %w", err)
	}

	w.logger.Info("json report saved", "path", path)
	return nil
}
