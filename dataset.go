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
	"strconv"
	"time"
)

// Record is a single patient-visit row keyed by column name. A missing key
// or a nil value both count as null.
type Record map[string]interface{}

// Dataset is an in-memory snapshot of the tabular patient-visit data. The
// column set is fixed by the loader, not inferred; Records hold values of
// type string, int, float64, bool or nil.
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

func NewDataset(columns []string) *Dataset {
	return &Dataset{
		Columns: columns,
		Records: []Record{},
	}
}

func (d *Dataset) NumRecords() int {
	return len(d.Records)
}

func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// isNull reports whether the value at a column counts as missing.
func isNull(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok && s == "" {
		return true
	}
	return false
}

func (r Record) isNullAt(column string) bool {
	value, ok := r[column]
	if !ok {
		return true
	}
	return isNull(value)
}

// floatValue coerces a cell to float64 for range and outlier comparisons.
// Null, string and bool cells report !ok, so comparisons against them never
// count as violations.
func floatValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func stringValue(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// displayValue renders a cell the way it appears in the source file. Bools
// keep the dataset's True/False capitalization so membership checks against
// the configured valid values line up.
func displayValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// canonicalKey builds a stable identity string for a record over the given
// columns. Used for duplicate detection, so it must not depend on record
// order or map iteration order.
func (r Record) canonicalKey(columns []string) string {
	key := make([]byte, 0, 64)
	for _, col := range columns {
		value, ok := r[col]
		if !ok || value == nil {
			key = append(key, '\x00')
		} else {
			key = append(key, displayValue(value)...)
		}
		key = append(key, '\x1f')
	}
	return string(key)
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseDate parses a date cell against the layouts seen in the source
// exports. Validity reports the first failure as a format break; consistency
// coerces failures to null instead.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}
