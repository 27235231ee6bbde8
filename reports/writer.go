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

// Package reports renders validation results and performance aggregates to
// disk: JSON for downstream tooling, Excel for analysts, plain text for the
// run log.
package reports

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

const timestampLayout = "20060102_150405"

// Writer renders validation reports into the reports and logs directories.
type Writer struct {
	reportsDir string
	logsDir    string
	logger     *slog.Logger
	now        func() time.Time
}

func NewWriter(reportsDir, logsDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Writer{
		reportsDir: reportsDir,
		logsDir:    logsDir,
		logger:     logger,
		now:        time.Now,
	}
}

// ExportAll writes the JSON, Excel and text reports for one validation run
// and returns the shared filename timestamp.
func (w *Writer) ExportAll(results *haqcore.ValidationResults, recommendations []haqcore.Recommendation, runID string) (string, error) {
	if results == nil || results.Overall == nil {
		return "", fmt.Errorf("cannot export an incomplete validation run")
	}

	for _, dir := range []string{w.reportsDir, w.logsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	timestamp := w.now().Format(timestampLayout)

	if err := w.WriteJSON(results, recommendations, runID, timestamp); err != nil {
		return "", err
	}
	if err := w.WriteExcel(results, recommendations, timestamp); err != nil {
		return "", err
	}
	if err := w.WriteText(results, recommendations, timestamp); err != nil {
		return "", err
	}

	return timestamp, nil
}
