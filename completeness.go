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

import "fmt"

// ColumnCompleteness is the missing-value census for one column.
// Percentage is relative to the full record count.
type ColumnCompleteness struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	IsCritical bool    `json:"is_critical"`
}

// RecordCompleteness counts records with at least one missing field.
type RecordCompleteness struct {
	RecordsWithMissing int     `json:"records_with_missing"`
	Percentage         float64 `json:"percentage"`
}

type CompletenessResult struct {
	TotalRecords      int                           `json:"total_records"`
	TotalColumns      int                           `json:"total_columns"`
	MissingByColumn   map[string]ColumnCompleteness `json:"missing_by_column"`
	MissingByRecord   RecordCompleteness            `json:"missing_by_record"`
	CompletenessScore float64                       `json:"completeness_score"`
}

// checkCompleteness performs the missing-value census. An empty dataset is a
// valid degenerate input and trivially scores 100. One HIGH recommendation
// is emitted per critical column with at least one missing value, not one
// per missing cell.
func checkCompleteness(dataset *Dataset, cfg *ValidationConfig) (*CompletenessResult, []Recommendation) {
	totalRecords := dataset.NumRecords()
	totalColumns := dataset.NumColumns()

	result := &CompletenessResult{
		TotalRecords:      totalRecords,
		TotalColumns:      totalColumns,
		MissingByColumn:   make(map[string]ColumnCompleteness, totalColumns),
		CompletenessScore: 100,
	}

	critical := make(map[string]bool, len(cfg.CriticalColumns))
	for _, col := range cfg.CriticalColumns {
		critical[col] = true
	}

	var recommendations []Recommendation
	missingCells := 0

	for _, col := range dataset.Columns {
		missingCount := 0
		for _, record := range dataset.Records {
			if record.isNullAt(col) {
				missingCount++
			}
		}
		missingCells += missingCount

		missingPct := 0.0
		if totalRecords > 0 {
			missingPct = float64(missingCount) / float64(totalRecords) * 100
		}
		result.MissingByColumn[col] = ColumnCompleteness{
			Count:      missingCount,
			Percentage: round2(missingPct),
			IsCritical: critical[col],
		}

		if critical[col] && missingCount > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityHigh,
				Category:       "Completeness",
				Issue:          fmt.Sprintf("Critical column '%s' has %d missing values", col, missingCount),
				Recommendation: fmt.Sprintf("Investigate and fill missing values in %s", col),
			})
		}
	}

	recordsWithMissing := 0
	for _, record := range dataset.Records {
		for _, col := range dataset.Columns {
			if record.isNullAt(col) {
				recordsWithMissing++
				break
			}
		}
	}
	result.MissingByRecord = RecordCompleteness{
		RecordsWithMissing: recordsWithMissing,
	}
	if totalRecords > 0 {
		result.MissingByRecord.Percentage = round2(float64(recordsWithMissing) / float64(totalRecords) * 100)
	}

	totalCells := totalRecords * totalColumns
	if totalCells > 0 {
		result.CompletenessScore = round2(float64(totalCells-missingCells) / float64(totalCells) * 100)
	}

	return result, recommendations
}
