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
	"fmt"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

// WriteExcel writes the analyst workbook: a Summary sheet with the
// dimension scores, a Recommendations sheet and a Missing Values sheet.
func (w *Writer) WriteExcel(results *haqcore.ValidationResults, recommendations []haqcore.Recommendation, timestamp string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Metric", "Score"},
		{"Overall Quality Score", results.Overall.QualityScore},
	}
	for _, dimension := range dimensionOrder {
		if score, ok := results.Overall.DimensionScores[dimension]; ok {
			summaryRows = append(summaryRows, []interface{}{titleCase(dimension), score})
		}
	}
	if err := writeSheetRows(f, summarySheet, summaryRows); err != nil {
		return err
	}

	if len(recommendations) > 0 {
		const recSheet = "Recommendations"
		if _, err := f.NewSheet(recSheet); err != nil {
			return fmt.Errorf("failed to create recommendations sheet: %w", err)
		}
		recRows := [][]interface{}{{"Severity", "Category", "Issue", "Recommendation"}}
		for _, rec := range recommendations {
			recRows = append(recRows, []interface{}{string(rec.Severity), rec.Category, rec.Issue, rec.Recommendation})
		}
		if err := writeSheetRows(f, recSheet, recRows); err != nil {
			return err
		}
	}

	if results.Completeness != nil {
		const missingSheet = "Missing Values"
		if _, err := f.NewSheet(missingSheet); err != nil {
			return fmt.Errorf("failed to create missing values sheet: %w", err)
		}

		columns := make([]string, 0, len(results.Completeness.MissingByColumn))
		for col := range results.Completeness.MissingByColumn {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		missingRows := [][]interface{}{{"Column", "Missing Count", "Missing Percentage", "Is Critical"}}
		for _, col := range columns {
			data := results.Completeness.MissingByColumn[col]
			missingRows = append(missingRows, []interface{}{col, data.Count, data.Percentage, data.IsCritical})
		}
		if err := writeSheetRows(f, missingSheet, missingRows); err != nil {
			return err
		}
	}

	path := filepath.Join(w.reportsDir, fmt.Sprintf("Data_Quality_Report_%s.xlsx", timestamp))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write excel report: %w", err)
	}

	w.logger.Info("excel report saved", "path", path)
	return nil
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
