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

// Package store mirrors the patient-visit dataset into a local SQLite
// database so analysts can run ad hoc SQL against it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

const MirrorTable = "healthcare_patients"

// mirrorIndexes speeds up the ad hoc queries analysts actually run. Only
// indexes whose column exists in the dataset are created.
var mirrorIndexes = map[string]string{
	"idx_date":       "date",
	"idx_patient_id": "patient_id",
	"idx_department": "department_referral",
	"idx_age":        "patient_age",
	"idx_waittime":   "patient_waittime",
}

// MirrorStore owns the SQLite connection for the analytics mirror.
type MirrorStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*MirrorStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &MirrorStore{db: db, logger: logger}, nil
}

func (s *MirrorStore) Close() error {
	return s.db.Close()
}

// MirrorDataset replaces the mirror table with the given dataset, creates
// the indexes and returns the verified row count.
func (s *MirrorStore) MirrorDataset(ctx context.Context, dataset *haqcore.Dataset) (int, error) {
	if dataset.NumColumns() == 0 {
		return 0, fmt.Errorf("cannot mirror a dataset with no columns")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`drop table if exists %q`, MirrorTable)); err != nil {
		return 0, fmt.Errorf("failed to drop existing mirror table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTableStatement(dataset)); err != nil {
		return 0, fmt.Errorf("failed to create mirror table: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, insertStatement(dataset))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insert.Close()

	for i, record := range dataset.Records {
		args := make([]interface{}, len(dataset.Columns))
		for j, col := range dataset.Columns {
			args[j] = record[col]
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	for name, column := range mirrorIndexes {
		if !dataset.HasColumn(column) {
			continue
		}
		stmt := fmt.Sprintf(`create index if not exists %q on %q (%q)`, name, MirrorTable, column)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit mirror transaction: %w", err)
	}

	count, err := s.CountRecords(ctx)
	if err != nil {
		return 0, err
	}
	if count != dataset.NumRecords() {
		return count, fmt.Errorf("mirror row count mismatch: loaded %d, expected %d", count, dataset.NumRecords())
	}

	s.logger.Info("mirrored dataset to sqlite", "table", MirrorTable, "records", count)
	return count, nil
}

func (s *MirrorStore) CountRecords(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`select count(*) from %q`, MirrorTable))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mirror records: %w", err)
	}
	return count, nil
}

// SampleRows returns up to limit rows from the mirror for a quick sanity
// look after loading.
func (s *MirrorStore) SampleRows(ctx context.Context, limit int) ([]haqcore.Record, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`select * from %q limit ?`, MirrorTable), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample rows: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample columns: %w", err)
	}

	var sample []haqcore.Record
	for rows.Next() {
		dest := make([]interface{}, len(columns))
		for i := range dest {
			dest[i] = new(interface{})
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}

		record := haqcore.Record{}
		for i, col := range columns {
			record[col] = *(dest[i].(*interface{}))
		}
		sample = append(sample, record)
	}

	return sample, rows.Err()
}

// createTableStatement declares column affinities from the first non-null
// value per column; columns that never carry a value default to TEXT.
func createTableStatement(dataset *haqcore.Dataset) string {
	defs := make([]string, len(dataset.Columns))
	for i, col := range dataset.Columns {
		defs[i] = fmt.Sprintf("%q %s", col, columnAffinity(dataset, col))
	}
	return fmt.Sprintf(`create table %q (%s)`, MirrorTable, strings.Join(defs, ", "))
}

func insertStatement(dataset *haqcore.Dataset) string {
	quoted := make([]string, len(dataset.Columns))
	placeholders := make([]string, len(dataset.Columns))
	for i, col := range dataset.Columns {
		quoted[i] = fmt.Sprintf("%q", col)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(`insert into %q (%s) values (%s)`,
		MirrorTable, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func columnAffinity(dataset *haqcore.Dataset, column string) string {
	for _, record := range dataset.Records {
		switch record[column].(type) {
		case nil:
			continue
		case int:
			return "INTEGER"
		case float64:
			return "REAL"
		case bool:
			return "INTEGER"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}
