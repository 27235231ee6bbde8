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
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Range holds inclusive bounds for a numeric column. A value equal to either
// bound is not a violation.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

var rangeExprRegex = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*\.\.\s*(-?\d+(?:\.\d+)?)\s*$`)

// UnmarshalYAML accepts three spellings for a range: a compact expression
// scalar ("0..120"), a two-element sequence ([0, 120]), or a mapping with
// min/max keys.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		matches := rangeExprRegex.FindStringSubmatch(node.Value)
		if matches == nil {
			return fmt.Errorf("invalid range expression: %q", node.Value)
		}
		minVal, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return fmt.Errorf("failed to parse range min: %v", err)
		}
		maxVal, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return fmt.Errorf("failed to parse range max: %v", err)
		}
		r.Min = minVal
		r.Max = maxVal
	case yaml.SequenceNode:
		var bounds []float64
		if err := node.Decode(&bounds); err != nil {
			return err
		}
		if len(bounds) != 2 {
			return fmt.Errorf("range sequence must have exactly 2 elements, got %d", len(bounds))
		}
		r.Min = bounds[0]
		r.Max = bounds[1]
	case yaml.MappingNode:
		var bounds struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := node.Decode(&bounds); err != nil {
			return err
		}
		r.Min = bounds.Min
		r.Max = bounds.Max
	default:
		return fmt.Errorf("unsupported yaml node for range")
	}

	if r.Min > r.Max {
		return fmt.Errorf("range min %v is greater than max %v", r.Min, r.Max)
	}
	return nil
}

func (r Range) displayString() string {
	return fmt.Sprintf("%s-%s",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// ValidationConfig drives the five quality checks. Zero-value sections fall
// back to the defaults for the healthcare patient dataset.
type ValidationConfig struct {
	CriticalColumns    []string            `yaml:"critical_columns"`
	NumericColumns     []string            `yaml:"numeric_columns"`
	CategoricalColumns []string            `yaml:"categorical_columns"`
	ExpectedRanges     map[string]Range    `yaml:"expected_ranges"`
	ValidValues        map[string][]string `yaml:"valid_values"`
}

// DefaultValidationConfig returns the validation configuration for the
// healthcare patient-visit dataset.
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		CriticalColumns:    []string{"date", "patient_id", "patient_age", "patient_waittime"},
		NumericColumns:     []string{"patient_age", "patient_waittime", "patient_sat_score"},
		CategoricalColumns: []string{"patient_gender", "patient_race", "department_referral"},
		ExpectedRanges: map[string]Range{
			"patient_age":       {Min: 0, Max: 120},
			"patient_waittime":  {Min: 0, Max: 300},
			"patient_sat_score": {Min: 0, Max: 10},
		},
		ValidValues: map[string][]string{
			"patient_gender":     {"M", "F"},
			"patient_admin_flag": {"True", "False"},
			"Moment":             {"AM", "PM"},
		},
	}
}

// LoadValidationConfig reads a validation configuration from a YAML file.
// Sections absent from the file keep their default values.
func LoadValidationConfig(fileName string) (*ValidationConfig, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := DefaultValidationConfig()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode validation config: %w", err)
	}

	return cfg, nil
}

// Reconcile reduces the configuration to the columns actually present in
// the dataset. Checks receive the reduced configuration and never re-probe
// column presence themselves.
func (c *ValidationConfig) Reconcile(columns []string) *ValidationConfig {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	keep := func(cols []string) []string {
		kept := make([]string, 0, len(cols))
		for _, col := range cols {
			if present[col] {
				kept = append(kept, col)
			}
		}
		return kept
	}

	reconciled := &ValidationConfig{
		CriticalColumns:    keep(c.CriticalColumns),
		NumericColumns:     keep(c.NumericColumns),
		CategoricalColumns: keep(c.CategoricalColumns),
		ExpectedRanges:     make(map[string]Range),
		ValidValues:        make(map[string][]string),
	}
	for col, r := range c.ExpectedRanges {
		if present[col] {
			reconciled.ExpectedRanges[col] = r
		}
	}
	for col, values := range c.ValidValues {
		if present[col] {
			reconciled.ValidValues[col] = values
		}
	}
	return reconciled
}
