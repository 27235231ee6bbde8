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
	"context"
	"testing"
)

func TestProfileDataset(t *testing.T) {
	dataset := makeDataset([]string{"patient_age", "department_referral"},
		Record{"patient_age": 20, "department_referral": "Cardiology"},
		Record{"patient_age": 40, "department_referral": "Cardiology"},
		Record{"patient_age": nil, "department_referral": ""},
		Record{"patient_age": 30, "department_referral": "Orthopedics"},
	)

	profiler := NewDatasetProfiler(nil)
	metrics, err := profiler.ProfileDataset(context.Background(), dataset, "patients", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.DatasetName != "patients" || metrics.TotalRows != 4 {
		t.Errorf("got %s/%d, want patients/4", metrics.DatasetName, metrics.TotalRows)
	}
	if len(metrics.ColumnsMetrics) != 2 {
		t.Fatalf("got %d column metrics, want 2", len(metrics.ColumnsMetrics))
	}

	age := metrics.ColumnsMetrics["patient_age"]
	if age.NullCount != 1 {
		t.Errorf("got %d nulls for patient_age, want 1", age.NullCount)
	}
	if age.MinValue == nil || *age.MinValue != 20 {
		t.Errorf("got min %v, want 20", age.MinValue)
	}
	if age.MaxValue == nil || *age.MaxValue != 40 {
		t.Errorf("got max %v, want 40", age.MaxValue)
	}
	if age.AvgValue == nil || *age.AvgValue != 30 {
		t.Errorf("got avg %v, want 30", age.AvgValue)
	}
	if age.StddevValue == nil || *age.StddevValue != 10 {
		t.Errorf("got stddev %v, want 10", age.StddevValue)
	}
	if age.BlankCount != nil {
		t.Errorf("numeric column reported a blank count: %v", *age.BlankCount)
	}

	dept := metrics.ColumnsMetrics["department_referral"]
	if dept.NullCount != 1 {
		t.Errorf("got %d nulls for department, want 1", dept.NullCount)
	}
	if dept.BlankCount == nil || *dept.BlankCount != 1 {
		t.Errorf("got blank count %v, want 1", dept.BlankCount)
	}
	if dept.MostFrequentValue == nil || *dept.MostFrequentValue != "Cardiology" {
		t.Errorf("got most frequent %v, want Cardiology", dept.MostFrequentValue)
	}
	if dept.MinValue != nil {
		t.Error("string column reported numeric metrics")
	}
}

func TestProfileDatasetFrequencyTieBreak(t *testing.T) {
	dataset := makeDataset([]string{"patient_gender"},
		Record{"patient_gender": "M"},
		Record{"patient_gender": "F"},
	)

	profiler := NewDatasetProfiler(nil)
	metrics, err := profiler.ProfileDataset(context.Background(), dataset, "patients", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ties resolve to the lexically smaller value so reruns agree
	got := metrics.ColumnsMetrics["patient_gender"].MostFrequentValue
	if got == nil || *got != "F" {
		t.Errorf("got most frequent %v, want F", got)
	}
}

func TestProfileDatasetNoColumns(t *testing.T) {
	profiler := NewDatasetProfiler(nil)
	metrics, err := profiler.ProfileDataset(context.Background(), NewDataset(nil), "empty", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metrics.ColumnsMetrics) != 0 {
		t.Errorf("got column metrics %+v, want none", metrics.ColumnsMetrics)
	}
}

func TestProfileDatasetCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profiler := NewDatasetProfiler(nil)
	dataset := makeDataset([]string{"patient_age"}, Record{"patient_age": 1})
	if _, err := profiler.ProfileDataset(ctx, dataset, "patients", 1); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}
