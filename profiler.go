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
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ColumnMetrics is the profiled census of one column.
type ColumnMetrics struct {
	ColumnName          string   `json:"col_name"`
	NullCount           int      `json:"null_count"`
	BlankCount          *int     `json:"blank_count,omitempty"`         // string only
	MinValue            *float64 `json:"min_value,omitempty"`           // numeric only
	MaxValue            *float64 `json:"max_value,omitempty"`           // numeric only
	AvgValue            *float64 `json:"avg_value,omitempty"`           // numeric only
	StddevValue         *float64 `json:"stddev_value,omitempty"`        // numeric only
	MostFrequentValue   *string  `json:"most_frequent_value,omitempty"` // pointer to handle NULL as most frequent
	ProfilingDurationMs int64    `json:"profiling_duration_ms"`
}

// DatasetMetrics is the profiled census of the whole dataset.
type DatasetMetrics struct {
	ProfiledAt          int64                     `json:"profiled_at"`
	DatasetName         string                    `json:"dataset_name"`
	TotalRows           int                       `json:"total_rows"`
	ColumnsMetrics      map[string]*ColumnMetrics `json:"columns_metrics"`
	ProfilingDurationMs int64                     `json:"profiling_duration_ms"`
}

// DatasetProfiler computes per-column metrics over the in-memory dataset.
// Profiling is descriptive and independent of the quality checks; the
// pipeline logs its output as the dataset overview before validation.
type DatasetProfiler struct {
	logger *slog.Logger
}

func NewDatasetProfiler(logger *slog.Logger) *DatasetProfiler {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DatasetProfiler{logger: logger}
}

// ProfileDataset profiles every column, fanning the per-column work out over
// a TaskPool bounded by maxConcurrent.
func (p *DatasetProfiler) ProfileDataset(ctx context.Context, dataset *Dataset, name string, maxConcurrent int) (*DatasetMetrics, error) {
	startTime := time.Now()
	taskPool := NewTaskPool(maxConcurrent, p.logger)

	metrics := &DatasetMetrics{
		ProfiledAt:     time.Now().Unix(),
		DatasetName:    name,
		TotalRows:      dataset.NumRecords(),
		ColumnsMetrics: make(map[string]*ColumnMetrics, dataset.NumColumns()),
	}

	if dataset.NumColumns() == 0 {
		p.logger.Warn("no columns found in dataset, returning basic info", "dataset", name)
		metrics.ProfilingDurationMs = time.Since(startTime).Milliseconds()
		return metrics, nil
	}

	var metricsLock sync.Mutex
	for _, col := range dataset.Columns {
		column := col
		taskPool.Enqueue("task:"+column, func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("profiling cancelled before column %s: %w", column, err)
			}

			colStartTime := time.Now()
			colMetrics := profileColumn(dataset, column)
			colMetrics.ProfilingDurationMs = time.Since(colStartTime).Milliseconds()

			metricsLock.Lock()
			metrics.ColumnsMetrics[column] = colMetrics
			metricsLock.Unlock()

			p.logger.Debug("finished processing column",
				"col_name", column,
				"proc_duration_ms", colMetrics.ProfilingDurationMs)
			return nil
		})
	}

	taskPool.Join()
	if errs := taskPool.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("failed to profile dataset %s: %w", name, errs[0])
	}

	metrics.ProfilingDurationMs = time.Since(startTime).Milliseconds()
	p.logger.Debug("finished data profiling for dataset",
		"dataset", name,
		"profile_duration_ms", metrics.ProfilingDurationMs)

	return metrics, nil
}

func profileColumn(dataset *Dataset, column string) *ColumnMetrics {
	colMetrics := &ColumnMetrics{ColumnName: column}

	var numericValues []float64
	numeric := true
	hasStrings := false
	blankCount := 0
	frequency := make(map[string]int)

	for _, record := range dataset.Records {
		if record.isNullAt(column) {
			colMetrics.NullCount++
			if s, ok := stringValue(record[column]); ok && s == "" {
				blankCount++
			}
			continue
		}

		value := record[column]
		frequency[displayValue(value)]++

		if v, ok := floatValue(value); ok {
			numericValues = append(numericValues, v)
		} else {
			numeric = false
			if _, ok := stringValue(value); ok {
				hasStrings = true
			}
		}
	}

	if hasStrings {
		colMetrics.BlankCount = &blankCount
	}

	if numeric && len(numericValues) > 0 {
		minV := minValue(numericValues)
		maxV := maxValue(numericValues)
		avgV := mean(numericValues)
		stddevV := sampleStdDev(numericValues)
		colMetrics.MinValue = &minV
		colMetrics.MaxValue = &maxV
		colMetrics.AvgValue = &avgV
		colMetrics.StddevValue = &stddevV
	}

	if len(frequency) > 0 {
		best := ""
		bestCount := -1
		for value, count := range frequency {
			if count > bestCount || (count == bestCount && value < best) {
				best = value
				bestCount = count
			}
		}
		colMetrics.MostFrequentValue = &best
	}

	return colMetrics
}
