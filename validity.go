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
	"sort"
)

// RangeCheck reports records falling strictly outside the inclusive
// expected range for a numeric column. Null values never count as
// violations.
type RangeCheck struct {
	ExpectedRange string  `json:"expected_range"`
	Violations    int     `json:"violations"`
	Percentage    float64 `json:"percentage"`
}

// ValueCheck reports non-null values absent from the permitted value set.
type ValueCheck struct {
	ExpectedValues []string `json:"expected_values"`
	Violations     int      `json:"violations"`
	InvalidValues  []string `json:"invalid_values"`
}

// FormatCheck reports whether every value in a column parses as a date.
// When parsing fails the individual failing rows are not counted, only the
// fact of the failure: Violations is nil and Status is Invalid.
type FormatCheck struct {
	Violations *int   `json:"violations"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

const (
	FormatStatusValid   = "Valid"
	FormatStatusInvalid = "Invalid"
)

type ValidityResult struct {
	RangeViolations  map[string]RangeCheck  `json:"range_violations"`
	ValueViolations  map[string]ValueCheck  `json:"value_violations"`
	FormatViolations map[string]FormatCheck `json:"format_violations"`
}

// checkValidity verifies range conformance, categorical value conformance
// and date parseability. Range bounds are inclusive: a value equal to a
// bound is not a violation.
func checkValidity(dataset *Dataset, cfg *ValidationConfig) (*ValidityResult, []Recommendation) {
	totalRecords := dataset.NumRecords()
	result := &ValidityResult{
		RangeViolations:  make(map[string]RangeCheck),
		ValueViolations:  make(map[string]ValueCheck),
		FormatViolations: make(map[string]FormatCheck),
	}

	var recommendations []Recommendation

	rangeColumns := make([]string, 0, len(cfg.ExpectedRanges))
	for col := range cfg.ExpectedRanges {
		rangeColumns = append(rangeColumns, col)
	}
	sort.Strings(rangeColumns)

	for _, col := range rangeColumns {
		expected := cfg.ExpectedRanges[col]
		violations := 0
		for _, record := range dataset.Records {
			value, ok := floatValue(record[col])
			if !ok {
				// null and non-numeric cells compare false against any bound
				continue
			}
			if value < expected.Min || value > expected.Max {
				violations++
			}
		}

		check := RangeCheck{
			ExpectedRange: expected.displayString(),
			Violations:    violations,
		}
		if totalRecords > 0 {
			check.Percentage = round2(float64(violations) / float64(totalRecords) * 100)
		}
		result.RangeViolations[col] = check

		if violations > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityMedium,
				Category:       "Validity",
				Issue:          fmt.Sprintf("%d records in '%s' outside range %s", violations, col, check.ExpectedRange),
				Recommendation: fmt.Sprintf("Validate and correct out-of-range values in %s", col),
			})
		}
	}

	valueColumns := make([]string, 0, len(cfg.ValidValues))
	for col := range cfg.ValidValues {
		valueColumns = append(valueColumns, col)
	}
	sort.Strings(valueColumns)

	for _, col := range valueColumns {
		validValues := cfg.ValidValues[col]
		permitted := make(map[string]bool, len(validValues))
		for _, v := range validValues {
			permitted[v] = true
		}

		violations := 0
		var invalidValues []string
		seen := make(map[string]bool)
		for _, record := range dataset.Records {
			if record.isNullAt(col) {
				// only non-null mismatches count
				continue
			}
			value := displayValue(record[col])
			if permitted[value] {
				continue
			}
			violations++
			if !seen[value] {
				seen[value] = true
				invalidValues = append(invalidValues, value)
			}
		}

		result.ValueViolations[col] = ValueCheck{
			ExpectedValues: validValues,
			Violations:     violations,
			InvalidValues:  invalidValues,
		}

		if violations > 0 {
			recommendations = append(recommendations, Recommendation{
				Severity:       SeverityMedium,
				Category:       "Validity",
				Issue:          fmt.Sprintf("%d records in '%s' have invalid values", violations, col),
				Recommendation: fmt.Sprintf("Standardize values in %s to match expected categories", col),
			})
		}
	}

	if dataset.HasColumn("date") {
		check, rec := checkDateFormat(dataset)
		result.FormatViolations["date"] = check
		if rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	return result, recommendations
}

// checkDateFormat attempts to parse every non-null date value. The first
// failure marks the whole column Invalid; the count of failing rows is
// deliberately not tracked.
func checkDateFormat(dataset *Dataset) (FormatCheck, *Recommendation) {
	for _, record := range dataset.Records {
		if record.isNullAt("date") {
			continue
		}
		value := displayValue(record["date"])
		if _, err := ParseDate(value); err != nil {
			rec := &Recommendation{
				Severity:       SeverityHigh,
				Category:       "Validity",
				Issue:          fmt.Sprintf("Date format issues detected: %v", err),
				Recommendation: "Standardize date format to YYYY-MM-DD",
			}
			return FormatCheck{
				Status: FormatStatusInvalid,
				Error:  err.Error(),
			}, rec
		}
	}

	zero := 0
	return FormatCheck{
		Violations: &zero,
		Status:     FormatStatusValid,
	}, nil
}
