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

package reports

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

func performanceDataset() *haqcore.Dataset {
	dataset := haqcore.NewDataset([]string{
		"date", "patient_age", "patient_waittime", "patient_sat_score",
		"department_referral", "patient_admin_flag",
	})
	dataset.Records = []haqcore.Record{
		{"date": "2025-06-16", "patient_age": 40, "patient_waittime": 30, "patient_sat_score": 8, "department_referral": "Cardiology", "patient_admin_flag": true},
		{"date": "2025-06-17", "patient_age": 10, "patient_waittime": 50, "patient_sat_score": 6, "department_referral": "None", "patient_admin_flag": "False"},
		{"date": "2025-06-10", "patient_age": 70, "patient_waittime": 100, "patient_sat_score": 2, "department_referral": "Cardiology", "patient_admin_flag": "True"},
		{"date": "2025-06-22", "patient_age": 25, "patient_waittime": 20, "patient_sat_score": nil, "department_referral": "", "patient_admin_flag": "True"},
		{"date": nil, "patient_age": 30, "patient_waittime": 10, "patient_sat_score": 5, "department_referral": "Orthopedics", "patient_admin_flag": false},
	}
	return dataset
}

func testReporter(t *testing.T) *PerformanceReporter {
	t.Helper()
	p := NewPerformanceReporter(performanceDataset(), nil)
	p.now = func() time.Time {
		// a Wednesday; the containing week runs Mon 06-16 to Sun 06-22
		return time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	}
	return p
}

func TestWeeklySummary(t *testing.T) {
	summary := testReporter(t).WeeklySummary()

	want := WeeklySummary{
		WeekStart:       "2025-06-16",
		WeekEnd:         "2025-06-22",
		TotalPatients:   3,
		AvgWaitTime:     33.33,
		AvgSatisfaction: 7, // only two in-week records carry a score
		AdmissionRate:   66.67,
		ReferralRate:    33.33, // "None" and blank do not count as referrals
	}
	if summary != want {
		t.Errorf("got %+v, want %+v", summary, want)
	}
}

func TestDepartmentPerformance(t *testing.T) {
	departments := testReporter(t).DepartmentPerformance()

	want := []DepartmentPerformance{
		{Department: "Cardiology", PatientCount: 2, AvgWaitTime: 65, MinWaitTime: 30, MaxWaitTime: 100, AvgSatisfaction: 5, Admissions: 2},
		{Department: "None", PatientCount: 1, AvgWaitTime: 50, MinWaitTime: 50, MaxWaitTime: 50, AvgSatisfaction: 6, Admissions: 0},
		{Department: "Orthopedics", PatientCount: 1, AvgWaitTime: 10, MinWaitTime: 10, MaxWaitTime: 10, AvgSatisfaction: 5, Admissions: 0},
	}
	if !reflect.DeepEqual(departments, want) {
		t.Errorf("got %+v, want %+v", departments, want)
	}
}

func TestAgeGroupAnalysis(t *testing.T) {
	analysis := testReporter(t).AgeGroupAnalysis()

	byGroup := make(map[string]AgeGroupAnalysis, len(analysis))
	for _, row := range analysis {
		byGroup[row.AgeGroup] = row
	}

	// every band is present even when empty
	if len(analysis) != 6 {
		t.Fatalf("got %d bands, want 6: %+v", len(analysis), analysis)
	}

	pediatric := byGroup["Pediatric (0-12)"]
	if pediatric.PatientCount != 1 || pediatric.AdmissionRate != 0 {
		t.Errorf("got pediatric %+v, want count 1 rate 0", pediatric)
	}

	adult := byGroup["Adult (30-44)"]
	want := AgeGroupAnalysis{AgeGroup: "Adult (30-44)", PatientCount: 2, AvgWaitTime: 20, AvgSatisfaction: 6.5, AdmissionRate: 50}
	if adult != want {
		t.Errorf("got adult %+v, want %+v", adult, want)
	}

	if adolescent := byGroup["Adolescent (13-17)"]; adolescent.PatientCount != 0 {
		t.Errorf("got adolescent %+v, want empty band", adolescent)
	}
}

func TestDailyTrends(t *testing.T) {
	trends := testReporter(t).DailyTrends()

	// the record without a date is dropped; days are sorted
	wantDays := []string{"2025-06-10", "2025-06-16", "2025-06-17", "2025-06-22"}
	if len(trends) != len(wantDays) {
		t.Fatalf("got %d days, want %d: %+v", len(trends), len(wantDays), trends)
	}
	for i, trend := range trends {
		if trend.Date != wantDays[i] {
			t.Errorf("day %d: got %s, want %s", i, trend.Date, wantDays[i])
		}
	}

	first := trends[0]
	if first.PatientCount != 1 || first.AvgWaitTime != 100 || first.Admissions != 1 {
		t.Errorf("got first day %+v, want count 1 wait 100 admissions 1", first)
	}
}

func TestPerformanceExport(t *testing.T) {
	p := testReporter(t)
	dir := t.TempDir()

	workbookPath, err := p.Export(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if workbookPath != filepath.Join(dir, "Weekly_Performance_Report_20250618_090000.xlsx") {
		t.Errorf("unexpected workbook path %q", workbookPath)
	}

	for _, name := range []string{
		"Weekly_Performance_Report_20250618_090000.xlsx",
		"Weekly_Summary_20250618_090000.csv",
		"Department_Performance_20250618_090000.csv",
		"Age_Group_Analysis_20250618_090000.csv",
		"Daily_Trends_20250618_090000.csv",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected export file %s: %v", name, err)
		}
	}
}
