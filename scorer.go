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

// OverallResult combines the five dimension scores into a single weighted
// quality score plus recommendation totals.
type OverallResult struct {
	QualityScore         float64            `json:"quality_score"`
	DimensionScores      map[string]float64 `json:"dimension_scores"`
	TotalRecommendations int                `json:"total_recommendations"`
	CriticalIssues       int                `json:"critical_issues"`
}

// scoreOverall computes the unweighted mean of the five dimension scores.
// A dimension that was never run defaults to 100: absence of evidence is
// not penalized. Normal flow always runs all five first, so the defaults
// are defensive only.
func scoreOverall(results *ValidationResults, recommendations []Recommendation, recordCount int) *OverallResult {
	scores := map[string]float64{
		"completeness": completenessScore(results),
		"uniqueness":   uniquenessScore(results),
		"validity":     validityScore(results, recordCount),
		"consistency":  consistencyScore(results, recordCount),
		"accuracy":     accuracyScore(results, recordCount),
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}

	critical := 0
	for _, rec := range recommendations {
		if rec.Severity == SeverityHigh {
			critical++
		}
	}

	return &OverallResult{
		QualityScore:         round2(total / float64(len(scores))),
		DimensionScores:      scores,
		TotalRecommendations: len(recommendations),
		CriticalIssues:       critical,
	}
}

func completenessScore(results *ValidationResults) float64 {
	if results.Completeness == nil {
		return 100
	}
	return results.Completeness.CompletenessScore
}

func uniquenessScore(results *ValidationResults) float64 {
	if results.Uniqueness == nil {
		return 100
	}
	return 100 - results.Uniqueness.ExactDuplicates.Percentage
}

// validityScore sums range and value violations across all checked columns
// against the full record count.
func validityScore(results *ValidationResults, recordCount int) float64 {
	if results.Validity == nil || recordCount == 0 {
		return 100
	}

	totalViolations := 0
	for _, check := range results.Validity.RangeViolations {
		totalViolations += check.Violations
	}
	for _, check := range results.Validity.ValueViolations {
		totalViolations += check.Violations
	}

	violationRate := float64(totalViolations) / float64(recordCount) * 100
	return maxFloat(0, 100-violationRate)
}

// consistencyScore penalizes future dates only; advisory logical and
// cross-field counts are informational.
func consistencyScore(results *ValidationResults, recordCount int) float64 {
	if results.Consistency == nil || recordCount == 0 {
		return 100
	}

	issues := 0
	if check, ok := results.Consistency.TemporalConsistency["future_dates"]; ok {
		issues = check.Count
	}

	issueRate := float64(issues) / float64(recordCount) * 100
	return maxFloat(0, 100-issueRate)
}

// accuracyScore weights outliers at half severity: extreme-but-real values
// are less likely to indicate defects than missing or duplicate data.
func accuracyScore(results *ValidationResults, recordCount int) float64 {
	if results.Accuracy == nil || recordCount == 0 {
		return 100
	}

	totalOutliers := 0
	for _, check := range results.Accuracy.Outliers {
		totalOutliers += check.Count
	}

	outlierRate := float64(totalOutliers) / float64(recordCount) * 100
	return maxFloat(0, 100-outlierRate*0.5)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
