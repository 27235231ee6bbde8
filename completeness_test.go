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
	"reflect"
	"testing"
)

func TestCheckCompleteness(t *testing.T) {
	columns := []string{"date", "patient_id", "patient_age", "patient_race"}
	dataset := makeDataset(columns,
		Record{"date": "2024-01-01", "patient_id": "P1", "patient_age": 30, "patient_race": "White"},
		Record{"date": "2024-01-02", "patient_id": "P2", "patient_age": nil, "patient_race": "Asian"},
		Record{"date": "2024-01-03", "patient_id": "P3", "patient_age": "", "patient_race": nil},
		Record{"date": "2024-01-04", "patient_id": "P4", "patient_age": 45, "patient_race": "Black"},
	)

	result, recs := checkCompleteness(dataset, DefaultValidationConfig())

	if result.TotalRecords != 4 || result.TotalColumns != 4 {
		t.Errorf("got totals %d/%d, want 4/4", result.TotalRecords, result.TotalColumns)
	}

	wantByColumn := map[string]ColumnCompleteness{
		"date":         {Count: 0, Percentage: 0, IsCritical: true},
		"patient_id":   {Count: 0, Percentage: 0, IsCritical: true},
		"patient_age":  {Count: 2, Percentage: 50, IsCritical: true},
		"patient_race": {Count: 1, Percentage: 25, IsCritical: false},
	}
	if !reflect.DeepEqual(result.MissingByColumn, wantByColumn) {
		t.Errorf("got missing by column %+v, want %+v", result.MissingByColumn, wantByColumn)
	}

	wantByRecord := RecordCompleteness{RecordsWithMissing: 2, Percentage: 50}
	if result.MissingByRecord != wantByRecord {
		t.Errorf("got missing by record %+v, want %+v", result.MissingByRecord, wantByRecord)
	}

	// 3 missing cells out of 16
	if result.CompletenessScore != 81.25 {
		t.Errorf("got completeness score %v, want 81.25", result.CompletenessScore)
	}

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Severity != SeverityHigh || recs[0].Category != "Completeness" {
		t.Errorf("got recommendation %+v, want HIGH Completeness", recs[0])
	}
	if recs[0].Issue != "Critical column 'patient_age' has 2 missing values" {
		t.Errorf("unexpected issue text: %q", recs[0].Issue)
	}
}

func TestCheckCompletenessCleanDataset(t *testing.T) {
	dataset := makeDataset([]string{"date", "patient_id"},
		Record{"date": "2024-01-01", "patient_id": "P1"},
		Record{"date": "2024-01-02", "patient_id": "P2"},
	)

	result, recs := checkCompleteness(dataset, DefaultValidationConfig())

	if result.CompletenessScore != 100 {
		t.Errorf("got completeness score %v, want 100", result.CompletenessScore)
	}
	if result.MissingByRecord.RecordsWithMissing != 0 {
		t.Errorf("got %d records with missing, want 0", result.MissingByRecord.RecordsWithMissing)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0", len(recs))
	}
}

func TestCheckCompletenessEmptyDataset(t *testing.T) {
	dataset := NewDataset([]string{"date", "patient_id"})

	result, recs := checkCompleteness(dataset, DefaultValidationConfig())

	if result.CompletenessScore != 100 {
		t.Errorf("got completeness score %v, want 100", result.CompletenessScore)
	}
	if result.TotalRecords != 0 {
		t.Errorf("got %d total records, want 0", result.TotalRecords)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0", len(recs))
	}
	for col, check := range result.MissingByColumn {
		if check.Count != 0 || check.Percentage != 0 {
			t.Errorf("column %s: got %+v, want zero counts", col, check)
		}
	}
}
