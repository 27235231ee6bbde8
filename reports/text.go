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
	"os"
	"path/filepath"
	"strings"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

// dimensionOrder fixes the presentation order of the dimension scores.
var dimensionOrder = []string{"completeness", "uniqueness", "validity", "consistency", "accuracy"}

// WriteText writes the human-readable summary to the logs directory.
func (w *Writer) WriteText(results *haqcore.ValidationResults, recommendations []haqcore.Recommendation, timestamp string) error {
	var b strings.Builder
	banner := strings.Repeat("=", 80)
	divider := strings.Repeat("-", 80)

	fmt.Fprintf(&b, "%s\n", banner)
	fmt.Fprintf(&b, "DATA QUALITY VALIDATION REPORT\n")
	fmt.Fprintf(&b, "%s\n\n", banner)
	fmt.Fprintf(&b, "Report Generated: %s\n", w.now().Format("2006-01-02 15:04:05"))
	if results.Completeness != nil {
		fmt.Fprintf(&b, "Dataset Records: %d\n", results.Completeness.TotalRecords)
	}
	fmt.Fprintf(&b, "Overall Quality Score: %.2f%%\n\n", results.Overall.QualityScore)

	fmt.Fprintf(&b, "DIMENSION SCORES:\n")
	fmt.Fprintf(&b, "%s\n", divider)
	for _, dimension := range dimensionOrder {
		score, ok := results.Overall.DimensionScores[dimension]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s%s: %.2f%%\n", strings.ToUpper(dimension[:1]), dimension[1:], score)
	}

	fmt.Fprintf(&b, "\n%s\n", banner)
	fmt.Fprintf(&b, "RECOMMENDATIONS (%d total)\n", len(recommendations))
	fmt.Fprintf(&b, "%s\n\n", banner)

	for i, rec := range recommendations {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, rec.Severity, rec.Category)
		fmt.Fprintf(&b, "   Issue: %s\n", rec.Issue)
		fmt.Fprintf(&b, "   Recommendation: %s\n\n", rec.Recommendation)
	}

	path := filepath.Join(w.logsDir, fmt.Sprintf("Data_Quality_Summary_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}

	w.logger.Info("text report saved", "path", path)
	return nil
}
