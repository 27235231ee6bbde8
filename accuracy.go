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

// OutlierCheck reports values outside the IQR fences for a numeric column.
// Percentage divides by the non-null count for the column, not the total
// record count; an extreme value in a sparse column would otherwise be
// diluted by rows that hold no value at all.
type OutlierCheck struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
}

// StatisticalSummary holds descriptive statistics rounded to 2 decimals.
type StatisticalSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type AccuracyResult struct {
	Outliers           map[string]OutlierCheck       `json:"outliers"`
	StatisticalSummary map[string]StatisticalSummary `json:"statistical_summary"`
}

// checkAccuracy runs IQR-based outlier detection over each configured
// numeric column with at least one non-null value. Fence comparisons use
// unrounded quartiles; rounding is presentation only. With zero variance
// the fences collapse to the constant and any deviation is an outlier.
func checkAccuracy(dataset *Dataset, cfg *ValidationConfig) (*AccuracyResult, []Recommendation) {
	result := &AccuracyResult{
		Outliers:           make(map[string]OutlierCheck),
		StatisticalSummary: make(map[string]StatisticalSummary),
	}

	var recommendations []Recommendation

	for _, col := range cfg.NumericColumns {
		values := make([]float64, 0, dataset.NumRecords())
		for _, record := range dataset.Records {
			if v, ok := floatValue(record[col]); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		q1 := percentile(values, 0.25)
		q3 := percentile(values, 0.75)
		iqr := q3 - q1
		lowerBound := q1 - 1.5*iqr
		upperBound := q3 + 1.5*iqr

		outliers := 0
		for _, v := range values {
			if v < lowerBound || v > upperBound {
				outliers++
			}
		}

		result.Outliers[col] = OutlierCheck{
			Count:      outliers,
			Percentage: round2(float64(outliers) / float64(len(values)) * 100),
			LowerBound: round2(lowerBound),
			UpperBound: round2(upperBound),
			Q1:         round2(q1),
			Q3:         round2(q3),
			IQR:        round2(iqr),
		}

		result.StatisticalSummary[col] = StatisticalSummary{
			Mean:   round2(mean(values)),
			Median: round2(median(values)),
			Std:    round2(sampleStdDev(values)),
			Min:    round2(minValue(values)),
			Max:    round2(maxValue(values)),
		}

		if outliers > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityLow,
				Category:       "Accuracy",
				Issue:          fmt.Sprintf("Found %d statistical outliers in '%s'", outliers, col),
				Recommendation: fmt.Sprintf("Review outliers in %s (outside %.2f-%.2f)", col, lowerBound, upperBound),
			})
		}
	}

	return result, recommendations
}
