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

// DuplicateStats counts duplicated records. Every member of a duplicate
// group is counted, so two identical rows report a count of 2.
type DuplicateStats struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// UniqueConstraint reports the distinct non-null cardinality of a column.
type UniqueConstraint struct {
	UniqueValues    int     `json:"unique_values"`
	TotalRecords    int     `json:"total_records"`
	UniquenessRatio float64 `json:"uniqueness_ratio"`
}

type UniquenessResult struct {
	ExactDuplicates   DuplicateStats              `json:"exact_duplicates"`
	IDDateDuplicates  DuplicateStats              `json:"id_date_duplicates"`
	UniqueConstraints map[string]UniqueConstraint `json:"unique_constraints"`
}

// uniquenessColumns is the fixed set of identity and categorical columns
// whose cardinality is reported.
var uniquenessColumns = []string{"patient_id", "patient_gender", "patient_race", "department_referral"}

// checkUniqueness detects exact full-row duplicates and duplicated
// patient_id+date pairs. The latter is the stronger signal: it implies a
// corrupted identity constraint rather than incidental repetition.
func checkUniqueness(dataset *Dataset) (*UniquenessResult, []Recommendation) {
	totalRecords := dataset.NumRecords()
	result := &UniquenessResult{
		UniqueConstraints: make(map[string]UniqueConstraint),
	}

	result.ExactDuplicates = countDuplicates(dataset.Records, dataset.Columns, totalRecords)

	var recommendations []Recommendation
	if result.ExactDuplicates.Count > 0 {
		recommendations = append(recommendations, Recommendation{
			Severity:       SeverityMedium,
			Category:       "Uniqueness",
			Issue:          fmt.Sprintf("Found %d exact duplicate records", result.ExactDuplicates.Count),
			Recommendation: "Review and remove duplicate records",
		})
	}

	if dataset.HasColumn("patient_id") && dataset.HasColumn("date") {
		result.IDDateDuplicates = countDuplicates(dataset.Records, []string{"patient_id", "date"}, totalRecords)
		if result.IDDateDuplicates.Count > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityHigh,
				Category:       "Uniqueness",
				Issue:          fmt.Sprintf("Found %d records with duplicate patient_id and date", result.IDDateDuplicates.Count),
				Recommendation: "Investigate why same patient has multiple records on same date",
			})
		}
	}

	for _, col := range uniquenessColumns {
		if !dataset.HasColumn(col) {
			continue
		}
		distinct := make(map[string]bool)
		for _, record := range dataset.Records {
			if record.isNullAt(col) {
				continue
			}
			distinct[displayValue(record[col])] = true
		}
		constraint := UniqueConstraint{
			UniqueValues: len(distinct),
			TotalRecords: totalRecords,
		}
		if totalRecords > 0 {
			constraint.UniquenessRatio = round4(float64(len(distinct)) / float64(totalRecords))
		}
		result.UniqueConstraints[col] = constraint
	}

	return result, recommendations
}

// countDuplicates counts every record whose key over the given columns
// appears more than once. Keys are built in schema column order, so row
// order cannot change the count.
func countDuplicates(records []Record, columns []string, totalRecords int) DuplicateStats {
	counts := make(map[string]int, len(records))
	for _, record := range records {
		counts[record.canonicalKey(columns)]++
	}

	duplicated := 0
	for _, n := range counts {
		if n > 1 {
			duplicated += n
		}
	}

	stats := DuplicateStats{Count: duplicated}
	if totalRecords > 0 {
		stats.Percentage = round2(float64(duplicated) / float64(totalRecords) * 100)
	}
	return stats
}
