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
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

func NewClickhouseConnection(connectionCfg ConnectionConfig) (driver.Conn, error) {
	cnn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{connectionCfg.Host},
		Auth: clickhouse.Auth{
			Database: connectionCfg.Database,
			Username: connectionCfg.Username,
			Password: connectionCfg.Password,
		},
		MaxOpenConns: 8,
		MaxIdleConns: 8,
	})
	return cnn, err
}

// ClickhouseSource reads the patient-visit table out of a ClickHouse
// warehouse into the in-memory dataset.
type ClickhouseSource struct {
	cnn    driver.Conn
	logger *slog.Logger
}

func NewClickhouseSource(cnn driver.Conn, logger *slog.Logger) *ClickhouseSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ClickhouseSource{
		cnn:    cnn,
		logger: logger,
	}
}

func (s *ClickhouseSource) Ping() (string, error) {
	serverVersion, err := s.cnn.ServerVersion()
	if err != nil {
		return "", err
	}

	return serverVersion.String(), nil
}

// LoadDataset fetches every row of the table. Column order follows the
// table definition; values are normalized to the dataset's primitive types.
func (s *ClickhouseSource) LoadDataset(ctx context.Context, table string) (*haqcore.Dataset, error) {
	if s.cnn == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := s.cnn.Query(ctx, fmt.Sprintf("select * from %s", table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns := rows.Columns()
	columnTypes := rows.ColumnTypes()

	dataset := haqcore.NewDataset(columns)
	for rows.Next() {
		dest := make([]interface{}, len(columns))
		for i, columnType := range columnTypes {
			dest[i] = reflect.New(columnType.ScanType()).Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := haqcore.Record{}
		for i, col := range columns {
			record[col] = normalizeValue(reflect.ValueOf(dest[i]).Elem().Interface())
		}
		dataset.Records = append(dataset.Records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}

	s.logger.Info("loaded dataset",
		"table", table,
		"records", dataset.NumRecords(),
		"columns", dataset.NumColumns())

	return dataset, nil
}

// normalizeValue flattens driver scan types to the dataset's primitives:
// nullable columns arrive as pointers, integer widths collapse to int,
// dates become the canonical string layout the checks parse.
func normalizeValue(value interface{}) interface{} {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return normalizeValue(rv.Elem().Interface())
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case string, bool, int, float64:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return float64(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
