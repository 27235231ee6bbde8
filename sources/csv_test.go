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

package sources

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, `date,patient_id,patient_age,patient_sat_score,department_referral
2024-01-01,P1,30,7.5,Cardiology
2024-01-02,P2,,,General Practice
`)

	dataset, err := LoadCSV(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantColumns := []string{"date", "patient_id", "patient_age", "patient_sat_score", "department_referral"}
	if !reflect.DeepEqual(dataset.Columns, wantColumns) {
		t.Errorf("got columns %v, want %v", dataset.Columns, wantColumns)
	}
	if dataset.NumRecords() != 2 {
		t.Fatalf("got %d records, want 2", dataset.NumRecords())
	}

	first := dataset.Records[0]
	if got, ok := first["patient_age"].(int); !ok || got != 30 {
		t.Errorf("got patient_age %v (%T), want int 30", first["patient_age"], first["patient_age"])
	}
	if got, ok := first["patient_sat_score"].(float64); !ok || got != 7.5 {
		t.Errorf("got patient_sat_score %v (%T), want float64 7.5", first["patient_sat_score"], first["patient_sat_score"])
	}
	if got, ok := first["patient_id"].(string); !ok || got != "P1" {
		t.Errorf("got patient_id %v, want P1", first["patient_id"])
	}

	// blank cells become nulls
	second := dataset.Records[1]
	if second["patient_age"] != nil || second["patient_sat_score"] != nil {
		t.Errorf("blank cells were not nulled: %v / %v", second["patient_age"], second["patient_sat_score"])
	}
}

func TestLoadCSVShortRows(t *testing.T) {
	path := writeTempCSV(t, `date,patient_id,patient_age
2024-01-01,P1
`)

	dataset, err := LoadCSV(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// trailing columns missing from a row read as nulls
	if dataset.Records[0]["patient_age"] != nil {
		t.Errorf("got %v, want nil for missing cell", dataset.Records[0]["patient_age"])
	}
}

func TestLoadCSVTrimsHeaderWhitespace(t *testing.T) {
	path := writeTempCSV(t, `date, patient_id , patient_age
2024-01-01,P1,30
`)

	dataset, err := LoadCSV(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"date", "patient_id", "patient_age"}
	if !reflect.DeepEqual(dataset.Columns, want) {
		t.Errorf("got columns %v, want %v", dataset.Columns, want)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want interface{}
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"integer", "42", 42},
		{"negative integer", "-7", -7},
		{"float", "3.25", 3.25},
		{"string", "Cardiology", "Cardiology"},
		{"padded string", " AM ", "AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceCell(tt.cell); got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}
