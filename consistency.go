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
	"time"
)

// TemporalCheck counts records dated after the validation instant.
type TemporalCheck struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AdvisoryCheck surfaces an unusual-but-plausible combination for human
// review. Advisory counts never generate recommendations and are excluded
// from scoring.
type AdvisoryCheck struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage,omitempty"`
	Note       string  `json:"note"`
}

type ConsistencyResult struct {
	TemporalConsistency   map[string]TemporalCheck `json:"temporal_consistency"`
	LogicalConsistency    map[string]AdvisoryCheck `json:"logical_consistency"`
	CrossFieldConsistency map[string]AdvisoryCheck `json:"cross_field_consistency"`
}

// adultOnlyDepartments are departments that do not normally see pediatric
// patients.
var adultOnlyDepartments = map[string]bool{
	"Cardiology":       true,
	"Gastroenterology": true,
}

// checkConsistency verifies temporal plausibility and cross-field logic.
// Unparseable dates are coerced to null here (the validity check already
// reports format breakage) so temporal comparisons simply skip them. Only
// future dates, the one unambiguous defect, generate a recommendation.
func checkConsistency(dataset *Dataset, now time.Time) (*ConsistencyResult, []Recommendation) {
	totalRecords := dataset.NumRecords()
	result := &ConsistencyResult{
		TemporalConsistency:   make(map[string]TemporalCheck),
		LogicalConsistency:    make(map[string]AdvisoryCheck),
		CrossFieldConsistency: make(map[string]AdvisoryCheck),
	}

	var recommendations []Recommendation

	if dataset.HasColumn("date") {
		futureDates := 0
		for _, record := range dataset.Records {
			if record.isNullAt("date") {
				continue
			}
			parsed, err := ParseDate(displayValue(record["date"]))
			if err != nil {
				continue
			}
			if parsed.After(now) {
				futureDates++
			}
		}

		check := TemporalCheck{Count: futureDates}
		if totalRecords > 0 {
			check.Percentage = round2(float64(futureDates) / float64(totalRecords) * 100)
		}
		result.TemporalConsistency["future_dates"] = check

		if futureDates > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityHigh,
				Category:       "Consistency",
				Issue:          fmt.Sprintf("Found %d records with future dates", futureDates),
				Recommendation: "Correct dates that are in the future",
			})
		}
	}

	if dataset.HasColumn("patient_sat_score") && dataset.HasColumn("patient_waittime") {
		suspicious := 0
		for _, record := range dataset.Records {
			satScore, okSat := floatValue(record["patient_sat_score"])
			waitTime, okWait := floatValue(record["patient_waittime"])
			if okSat && okWait && satScore >= 8 && waitTime >= 60 {
				suspicious++
			}
		}

		check := AdvisoryCheck{
			Count: suspicious,
			Note:  "High satisfaction despite long wait times (may be valid)",
		}
		if totalRecords > 0 {
			check.Percentage = round2(float64(suspicious) / float64(totalRecords) * 100)
		}
		result.LogicalConsistency["high_sat_high_wait"] = check
	}

	if dataset.HasColumn("patient_age") && dataset.HasColumn("department_referral") {
		pediatricInAdult := 0
		for _, record := range dataset.Records {
			age, ok := floatValue(record["patient_age"])
			if !ok || age >= 13 {
				continue
			}
			if dept, ok := stringValue(record["department_referral"]); ok && adultOnlyDepartments[dept] {
				pediatricInAdult++
			}
		}

		result.CrossFieldConsistency["pediatric_in_adult_dept"] = AdvisoryCheck{
			Count: pediatricInAdult,
			Note:  "Pediatric patients in typically adult-focused departments",
		}
	}

	return result, recommendations
}
