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
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

// LoadCSV reads a CSV export into a dataset. The first row is the header;
// blank cells become nulls, and cells that parse as numbers are stored as
// int or float64 so range and outlier checks can compare them.
func LoadCSV(path string, logger *slog.Logger) (*haqcore.Dataset, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	dataset := haqcore.NewDataset(columns)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}
		line++

		record := haqcore.Record{}
		for i, col := range columns {
			if i >= len(row) {
				record[col] = nil
				continue
			}
			record[col] = coerceCell(row[i])
		}
		dataset.Records = append(dataset.Records, record)
	}

	logger.Info("loaded dataset",
		"path", path,
		"records", dataset.NumRecords(),
		"columns", dataset.NumColumns())

	return dataset, nil
}

// coerceCell maps a raw CSV cell to its in-memory value: empty cells become
// null, integers and floats become numeric, everything else stays a string.
func coerceCell(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if intVal, err := strconv.Atoi(trimmed); err == nil {
		return intVal
	}
	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}
	return trimmed
}
