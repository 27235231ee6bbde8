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

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
	"github.com/harshrajput4343/Healthcare-Analytics-Project/reports"
	"github.com/harshrajput4343/Healthcare-Analytics-Project/sources"
	"github.com/harshrajput4343/Healthcare-Analytics-Project/store"
)

// Runner executes the analytics stages in order: load, profile, mirror,
// validate, report. A failed stage aborts the run.
type Runner struct {
	cfg    *Config
	logger *slog.Logger
}

func NewRunner(cfg *Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, logger: logger}
}

// RunSummary reports what one pipeline run produced.
type RunSummary struct {
	RunID            string
	QualityScore     float64
	CriticalIssues   int
	Recommendations  int
	MirroredRecords  int
	ReportTimestamp  string
	PerformancePath  string
	DurationMs       int64
}

// Run executes the whole pipeline once.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	startTime := time.Now()

	logger.Info("starting analytics pipeline run")

	// Stage 1: load the dataset snapshot
	dataset, err := sources.Load(ctx, r.cfg.DataSource(), logger)
	if err != nil {
		return nil, fmt.Errorf("dataset load failed: %w", err)
	}

	// Stage 2: profile the columns for the run log
	profiler := haqcore.NewDatasetProfiler(logger)
	metrics, err := profiler.ProfileDataset(ctx, dataset, store.MirrorTable, r.cfg.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("dataset profiling failed: %w", err)
	}
	for _, col := range dataset.Columns {
		if colMetrics, ok := metrics.ColumnsMetrics[col]; ok {
			logger.Info("dataset column", "name", col, "nulls", colMetrics.NullCount)
		}
	}

	// Stage 3: mirror to SQLite for ad hoc SQL
	mirror, err := store.Open(r.cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("database setup failed: %w", err)
	}
	defer mirror.Close()

	mirrored, err := mirror.MirrorDataset(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("database setup failed: %w", err)
	}

	// Stage 4: data quality validation
	validationCfg, err := r.validationConfig()
	if err != nil {
		return nil, err
	}
	validator := haqcore.NewDataQualityValidator(dataset, validationCfg, logger)
	results, err := validator.RunAllValidations()
	if err != nil {
		return nil, fmt.Errorf("data quality validation failed: %w", err)
	}

	// Stage 5: validation reports
	writer := reports.NewWriter(r.cfg.ReportsDir, r.cfg.LogsDir, logger)
	timestamp, err := writer.ExportAll(results, validator.Recommendations(), runID)
	if err != nil {
		return nil, fmt.Errorf("report export failed: %w", err)
	}

	// Stage 6: weekly performance report
	performance := reports.NewPerformanceReporter(dataset, logger)
	performancePath, err := performance.Export(r.cfg.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("performance report failed: %w", err)
	}

	summary := &RunSummary{
		RunID:           runID,
		QualityScore:    results.Overall.QualityScore,
		CriticalIssues:  results.Overall.CriticalIssues,
		Recommendations: results.Overall.TotalRecommendations,
		MirroredRecords: mirrored,
		ReportTimestamp: timestamp,
		PerformancePath: performancePath,
		DurationMs:      time.Since(startTime).Milliseconds(),
	}

	logger.Info("analytics pipeline run complete",
		"quality_score", summary.QualityScore,
		"critical_issues", summary.CriticalIssues,
		"recommendations", summary.Recommendations,
		"duration_ms", summary.DurationMs)

	return summary, nil
}

func (r *Runner) validationConfig() (*haqcore.ValidationConfig, error) {
	if r.cfg.ChecksConfigPath == "" {
		return haqcore.DefaultValidationConfig(), nil
	}
	cfg, err := haqcore.LoadValidationConfig(r.cfg.ChecksConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load validation config: %w", err)
	}
	return cfg, nil
}
