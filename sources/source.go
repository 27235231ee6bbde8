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

// Package sources loads the patient-visit dataset into memory from its
// supported backends: a CSV export or a ClickHouse warehouse table.
package sources

import (
	"context"
	"fmt"
	"log/slog"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
)

type SourceType string

const (
	SourceTypeCSV        SourceType = "csv"
	SourceTypeClickhouse SourceType = "clickhouse"
)

// ConnectionConfig holds credentials for a warehouse-backed source.
type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// DataSource describes where the dataset comes from. Path applies to CSV
// sources; Table and Configuration apply to warehouse sources.
type DataSource struct {
	Type          SourceType       `yaml:"type"`
	Path          string           `yaml:"path,omitempty"`
	Table         string           `yaml:"table,omitempty"`
	Configuration ConnectionConfig `yaml:"configuration,omitempty"`
}

// Load reads the dataset described by the data source into memory.
func Load(ctx context.Context, dataSource *DataSource, logger *slog.Logger) (*haqcore.Dataset, error) {
	switch dataSource.Type {
	case SourceTypeCSV:
		return LoadCSV(dataSource.Path, logger)
	case SourceTypeClickhouse:
		connection, err := NewClickhouseConnection(dataSource.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
		}
		source := NewClickhouseSource(connection, logger)
		return source.LoadDataset(ctx, dataSource.Table)
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}
}
