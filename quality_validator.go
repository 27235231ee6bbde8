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

package haqcore

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Severity classifies how actionable a recommendation is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Recommendation pairs a detected issue with a suggested remediation.
type Recommendation struct {
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
}

// ValidationResults maps each quality dimension to its result record.
// Overall is only populated after all five dimension checks succeeded.
type ValidationResults struct {
	Completeness *CompletenessResult `json:"completeness,omitempty"`
	Uniqueness   *UniquenessResult   `json:"uniqueness,omitempty"`
	Validity     *ValidityResult     `json:"validity,omitempty"`
	Consistency  *ConsistencyResult  `json:"consistency,omitempty"`
	Accuracy     *AccuracyResult     `json:"accuracy,omitempty"`
	Overall      *OverallResult      `json:"overall,omitempty"`
}

// DataQualityValidator runs the five dimension checks and the scorer over a
// single dataset snapshot. One instance serves one dataset and one caller;
// the checks themselves are pure functions, so running twice on the same
// snapshot produces identical results.
type DataQualityValidator struct {
	dataset *Dataset
	cfg     *ValidationConfig
	logger  *slog.Logger
	now     func() time.Time

	results         *ValidationResults
	recommendations []Recommendation
}

func NewDataQualityValidator(dataset *Dataset, cfg *ValidationConfig, logger *slog.Logger) *DataQualityValidator {
	if cfg == nil {
		cfg = DefaultValidationConfig()
	}
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &DataQualityValidator{
		dataset: dataset,
		// reconcile the configured columns against the dataset schema once,
		// so the individual checks never probe column presence themselves
		cfg:    cfg.Reconcile(dataset.Columns),
		logger: logger,
		now:    time.Now,
	}
}

// RunAllValidations executes the five dimension checks in fixed pass order
// (completeness, uniqueness, validity, consistency, accuracy) and then the
// overall scorer. Recommendations are collected in pass order regardless of
// severity. If any check fails to produce a result record the whole run
// fails and no overall score is computed.
func (v *DataQualityValidator) RunAllValidations() (*ValidationResults, error) {
	v.logger.Info("running data quality validation",
		"records", v.dataset.NumRecords(),
		"columns", v.dataset.NumColumns())

	v.results = &ValidationResults{}
	v.recommendations = nil

	startTime := time.Now()
	steps := []struct {
		dimension string
		run       func() error
	}{
		{"completeness", func() error {
			result, recs := checkCompleteness(v.dataset, v.cfg)
			if result == nil {
				return fmt.Errorf("completeness check produced no result")
			}
			v.results.Completeness = result
			v.recommendations = append(v.recommendations, recs...)
			return nil
		}},
		{"uniqueness", func() error {
			result, recs := checkUniqueness(v.dataset)
			if result == nil {
				return fmt.Errorf("uniqueness check produced no result")
			}
			v.results.Uniqueness = result
			v.recommendations = append(v.recommendations, recs...)
			return nil
		}},
		{"validity", func() error {
			result, recs := checkValidity(v.dataset, v.cfg)
			if result == nil {
				return fmt.Errorf("validity check produced no result")
			}
			v.results.Validity = result
			v.recommendations = append(v.recommendations, recs...)
			return nil
		}},
		{"consistency", func() error {
			result, recs := checkConsistency(v.dataset, v.now())
			if result == nil {
				return fmt.Errorf("consistency check produced no result")
			}
			v.results.Consistency = result
			v.recommendations = append(v.recommendations, recs...)
			return nil
		}},
		{"accuracy", func() error {
			result, recs := checkAccuracy(v.dataset, v.cfg)
			if result == nil {
				return fmt.Errorf("accuracy check produced no result")
			}
			v.results.Accuracy = result
			v.recommendations = append(v.recommendations, recs...)
			return nil
		}},
	}

	for _, step := range steps {
		if err := v.runStep(step.dimension, step.run); err != nil {
			return nil, fmt.Errorf("validation run failed: %w", err)
		}
	}

	v.results.Overall = scoreOverall(v.results, v.recommendations, v.dataset.NumRecords())

	v.logger.Info("data quality validation complete",
		"quality_score", v.results.Overall.QualityScore,
		"critical_issues", v.results.Overall.CriticalIssues,
		"recommendations", v.results.Overall.TotalRecommendations,
		"duration_ms", time.Since(startTime).Milliseconds())

	return v.results, nil
}

// runStep shields the run from an unexpected failure inside a single check:
// the error is surfaced as a run-level failure instead of a crash.
func (v *DataQualityValidator) runStep(dimension string, run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s check failed: %v", dimension, r)
		}
	}()

	v.logger.Debug("performing check", "dimension", dimension)
	stepStart := time.Now()
	if err := run(); err != nil {
		return fmt.Errorf("%s check failed: %w", dimension, err)
	}
	v.logger.Debug("check complete",
		"dimension", dimension,
		"duration_ms", time.Since(stepStart).Milliseconds())
	return nil
}

// Results returns the result mapping from the last run, or nil if the
// validator has not run yet.
func (v *DataQualityValidator) Results() *ValidationResults {
	return v.results
}

// Recommendations returns the advisory list from the last run, ordered by
// detection pass.
func (v *DataQualityValidator) Recommendations() []Recommendation {
	return v.recommendations
}
