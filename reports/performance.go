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
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

// WeeklySummary aggregates the current calendar week (Monday through
// Sunday) of visits.
type WeeklySummary struct {
	WeekStart       string  `json:"week_start"`
	WeekEnd         string  `json:"week_end"`
	TotalPatients   int     `json:"total_patients"`
	AvgWaitTime     float64 `json:"avg_wait_time"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	AdmissionRate   float64 `json:"admission_rate"`
	ReferralRate    float64 `json:"referral_rate"`
}

// DepartmentPerformance aggregates visits per referral department.
type DepartmentPerformance struct {
	Department      string  `json:"department"`
	PatientCount    int     `json:"patient_count"`
	AvgWaitTime     float64 `json:"avg_wait_time"`
	MinWaitTime     float64 `json:"min_wait_time"`
	MaxWaitTime     float64 `json:"max_wait_time"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	Admissions      int     `json:"admissions"`
}

// AgeGroupAnalysis aggregates visits per clinical age band.
type AgeGroupAnalysis struct {
	AgeGroup        string  `json:"age_group"`
	PatientCount    int     `json:"patient_count"`
	AvgWaitTime     float64 `json:"avg_wait_time"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	AdmissionRate   float64 `json:"admission_rate"`
}

// DailyTrend aggregates visits per calendar day.
type DailyTrend struct {
	Date            string  `json:"date"`
	PatientCount    int     `json:"patient_count"`
	AvgWaitTime     float64 `json:"avg_wait_time"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	Admissions      int     `json:"admissions"`
}

type ageBand struct {
	label string
	min   float64
	max   float64
}

var ageBands = []ageBand{
	{"Pediatric (0-12)", 0, 12},
	{"Adolescent (13-17)", 13, 17},
	{"Young Adult (18-29)", 18, 29},
	{"Adult (30-44)", 30, 44},
	{"Middle Age (45-64)", 45, 64},
	{"Senior (65+)", 65, 120},
}

// PerformanceReporter computes the weekly performance aggregates over a
// dataset snapshot.
type PerformanceReporter struct {
	dataset *haqcore.Dataset
	logger  *slog.Logger
	now     func() time.Time
}

func NewPerformanceReporter(dataset *haqcore.Dataset, logger *slog.Logger) *PerformanceReporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &PerformanceReporter{
		dataset: dataset,
		logger:  logger,
		now:     time.Now,
	}
}

// WeeklySummary aggregates the week containing the current instant.
func (p *PerformanceReporter) WeeklySummary() WeeklySummary {
	today := p.now()
	offset := (int(today.Weekday()) + 6) % 7 // Monday-based week
	weekStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	summary := WeeklySummary{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
	}

	var waitTimes, satScores []float64
	admissions := 0
	referrals := 0

	for _, record := range p.dataset.Records {
		visitDate, ok := recordDate(record)
		if !ok || visitDate.Before(weekStart) || !visitDate.Before(weekEnd) {
			continue
		}
		summary.TotalPatients++

		if wait, ok := floatField(record, "patient_waittime"); ok {
			waitTimes = append(waitTimes, wait)
		}
		if sat, ok := floatField(record, "patient_sat_score"); ok {
			satScores = append(satScores, sat)
		}
		if isAdmitted(record) {
			admissions++
		}
		if dept, ok := record["department_referral"].(string); ok && dept != "" && dept != "None" {
			referrals++
		}
	}

	summary.AvgWaitTime = roundAvg(waitTimes)
	summary.AvgSatisfaction = roundAvg(satScores)
	if summary.TotalPatients > 0 {
		summary.AdmissionRate = round2(float64(admissions) / float64(summary.TotalPatients) * 100)
		summary.ReferralRate = round2(float64(referrals) / float64(summary.TotalPatients) * 100)
	}
	return summary
}

// DepartmentPerformance aggregates the whole dataset per department, sorted
// by department name.
func (p *PerformanceReporter) DepartmentPerformance() []DepartmentPerformance {
	type deptAccum struct {
		count      int
		waitTimes  []float64
		satScores  []float64
		admissions int
	}
	byDept := make(map[string]*deptAccum)

	for _, record := range p.dataset.Records {
		dept, ok := record["department_referral"].(string)
		if !ok || dept == "" {
			continue
		}
		accum := byDept[dept]
		if accum == nil {
			accum = &deptAccum{}
			byDept[dept] = accum
		}
		accum.count++
		if wait, ok := floatField(record, "patient_waittime"); ok {
			accum.waitTimes = append(accum.waitTimes, wait)
		}
		if sat, ok := floatField(record, "patient_sat_score"); ok {
			accum.satScores = append(accum.satScores, sat)
		}
		if isAdmitted(record) {
			accum.admissions++
		}
	}

	departments := make([]string, 0, len(byDept))
	for dept := range byDept {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	performance := make([]DepartmentPerformance, 0, len(departments))
	for _, dept := range departments {
		accum := byDept[dept]
		row := DepartmentPerformance{
			Department:      dept,
			PatientCount:    accum.count,
			AvgWaitTime:     roundAvg(accum.waitTimes),
			AvgSatisfaction: roundAvg(accum.satScores),
			Admissions:      accum.admissions,
		}
		if len(accum.waitTimes) > 0 {
			row.MinWaitTime = round2(minOf(accum.waitTimes))
			row.MaxWaitTime = round2(maxOf(accum.waitTimes))
		}
		performance = append(performance, row)
	}
	return performance
}

// AgeGroupAnalysis aggregates the whole dataset per clinical age band.
func (p *PerformanceReporter) AgeGroupAnalysis() []AgeGroupAnalysis {
	analysis := make([]AgeGroupAnalysis, 0, len(ageBands))
	for _, band := range ageBands {
		var waitTimes, satScores []float64
		count := 0
		admissions := 0

		for _, record := range p.dataset.Records {
			age, ok := floatField(record, "patient_age")
			if !ok || age < band.min || age > band.max {
				continue
			}
			count++
			if wait, ok := floatField(record, "patient_waittime"); ok {
				waitTimes = append(waitTimes, wait)
			}
			if sat, ok := floatField(record, "patient_sat_score"); ok {
				satScores = append(satScores, sat)
			}
			if isAdmitted(record) {
				admissions++
			}
		}

		row := AgeGroupAnalysis{
			AgeGroup:        band.label,
			PatientCount:    count,
			AvgWaitTime:     roundAvg(waitTimes),
			AvgSatisfaction: roundAvg(satScores),
		}
		if count > 0 {
			row.AdmissionRate = round2(float64(admissions) / float64(count) * 100)
		}
		analysis = append(analysis, row)
	}
	return analysis
}

// DailyTrends aggregates the whole dataset per calendar day, sorted by day.
func (p *PerformanceReporter) DailyTrends() []DailyTrend {
	type dayAccum struct {
		count      int
		waitTimes  []float64
		satScores  []float64
		admissions int
	}
	byDay := make(map[string]*dayAccum)

	for _, record := range p.dataset.Records {
		visitDate, ok := recordDate(record)
		if !ok {
			continue
		}
		day := visitDate.Format("2006-01-02")
		accum := byDay[day]
		if accum == nil {
			accum = &dayAccum{}
			byDay[day] = accum
		}
		accum.count++
		if wait, ok := floatField(record, "patient_waittime"); ok {
			accum.waitTimes = append(accum.waitTimes, wait)
		}
		if sat, ok := floatField(record, "patient_sat_score"); ok {
			accum.satScores = append(accum.satScores, sat)
		}
		if isAdmitted(record) {
			accum.admissions++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	trends := make([]DailyTrend, 0, len(days))
	for _, day := range days {
		accum := byDay[day]
		trends = append(trends, DailyTrend{
			Date:            day,
			PatientCount:    accum.count,
			AvgWaitTime:     roundAvg(accum.waitTimes),
			AvgSatisfaction: roundAvg(accum.satScores),
			Admissions:      accum.admissions,
		})
	}
	return trends
}

// Export writes the multi-sheet Excel workbook and the per-section CSVs and
// returns the workbook path.
func (p *PerformanceReporter) Export(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := p.now().Format(timestampLayout)
	weekly := p.WeeklySummary()
	departments := p.DepartmentPerformance()
	ageGroups := p.AgeGroupAnalysis()
	daily := p.DailyTrends()

	weeklyRows := [][]interface{}{
		{"Week Start", "Week End", "Total Patients", "Average Wait Time", "Average Satisfaction", "Admission Rate", "Referral Rate"},
		{weekly.WeekStart, weekly.WeekEnd, weekly.TotalPatients, weekly.AvgWaitTime, weekly.AvgSatisfaction, weekly.AdmissionRate, weekly.ReferralRate},
	}
	deptRows := [][]interface{}{{"Department", "Patient_Count", "Avg_Wait_Time", "Min_Wait_Time", "Max_Wait_Time", "Avg_Satisfaction", "Admissions"}}
	for _, row := range departments {
		deptRows = append(deptRows, []interface{}{row.Department, row.PatientCount, row.AvgWaitTime, row.MinWaitTime, row.MaxWaitTime, row.AvgSatisfaction, row.Admissions})
	}
	ageRows := [][]interface{}{{"Age_Group", "Patient_Count", "Avg_Wait_Time", "Avg_Satisfaction", "Admission_Rate"}}
	for _, row := range ageGroups {
		ageRows = append(ageRows, []interface{}{row.AgeGroup, row.PatientCount, row.AvgWaitTime, row.AvgSatisfaction, row.AdmissionRate})
	}
	dailyRows := [][]interface{}{{"Date", "Patient_Count", "Avg_Wait_Time", "Avg_Satisfaction", "Admissions"}}
	for _, row := range daily {
		dailyRows = append(dailyRows, []interface{}{row.Date, row.PatientCount, row.AvgWaitTime, row.AvgSatisfaction, row.Admissions})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"Weekly Summary", weeklyRows},
		{"Department Performance", deptRows},
		{"Age Group Analysis", ageRows},
		{"Daily Trends", dailyRows},
	}
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return "", fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := writeSheetRows(f, sheet.name, sheet.rows); err != nil {
			return "", err
		}
	}

	workbookPath := filepath.Join(outputDir, fmt.Sprintf("Weekly_Performance_Report_%s.xlsx", timestamp))
	if err := f.SaveAs(workbookPath); err != nil {
		return "", fmt.Errorf("failed to write performance workbook: %w", err)
	}

	csvSections := []struct {
		name string
		rows [][]interface{}
	}{
		{fmt.Sprintf("Weekly_Summary_%s.csv", timestamp), weeklyRows},
		{fmt.Sprintf("Department_Performance_%s.csv", timestamp), deptRows},
		{fmt.Sprintf("Age_Group_Analysis_%s.csv", timestamp), ageRows},
		{fmt.Sprintf("Daily_Trends_%s.csv", timestamp), dailyRows},
	}
	for _, section := range csvSections {
		if err := writeCSV(filepath.Join(outputDir, section.name), section.rows); err != nil {
			return "", err
		}
	}

	p.logger.Info("performance report saved", "path", workbookPath)
	return workbookPath, nil
}

func writeCSV(path string, rows [][]interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, value := range row {
			switch v := value.(type) {
			case string:
				fields[i] = v
			case int:
				fields[i] = strconv.Itoa(v)
			case float64:
				fields[i] = strconv.FormatFloat(v, 'f', -1, 64)
			default:
				fields[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func recordDate(record haqcore.Record) (time.Time, bool) {
	raw, ok := record["date"].(string)
	if !ok || raw == "" {
		return time.Time{}, false
	}
	parsed, err := haqcore.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func floatField(record haqcore.Record, column string) (float64, bool) {
	switch v := record[column].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func isAdmitted(record haqcore.Record) bool {
	switch v := record["patient_admin_flag"].(type) {
	case bool:
		return v
	case string:
		return v == "True" || v == "true"
	default:
		return false
	}
}

func roundAvg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return round2(sum / float64(len(values)))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
