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

// Package pipeline sequences the analytics stages: load the dataset,
// mirror it to SQLite, run the quality validation, and write the reports.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/harshrajput4343/Healthcare-Analytics-Project/sources"
)

// Config is the runtime configuration, read from HAQ_* environment
// variables.
type Config struct {
	SourceType string `envconfig:"SOURCE_TYPE" default:"csv"`

	// CSV source
	DatasetPath string `envconfig:"DATASET_PATH" default:"Dataset/healthcare_patients.csv"`

	// ClickHouse source
	ClickhouseHost     string `envconfig:"CLICKHOUSE_HOST"`
	ClickhouseDatabase string `envconfig:"CLICKHOUSE_DATABASE"`
	ClickhouseUsername string `envconfig:"CLICKHOUSE_USERNAME"`
	ClickhousePassword string `envconfig:"CLICKHOUSE_PASSWORD"`
	ClickhouseTable    string `envconfig:"CLICKHOUSE_TABLE" default:"healthcare_patients"`

	// Output locations
	ReportsDir   string `envconfig:"REPORTS_DIR" default:"Reports"`
	LogsDir      string `envconfig:"LOGS_DIR" default:"Logs"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"healthcare_analytics.db"`

	// Optional YAML file overriding the default validation configuration.
	ChecksConfigPath string `envconfig:"CHECKS_CONFIG"`

	// Cron expression for scheduled report runs. The default mirrors the
	// original weekly schedule: Mondays at 08:00.
	ReportSchedule string `envconfig:"REPORT_SCHEDULE" default:"0 8 * * 1"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	MaxConcurrent int    `envconfig:"MAX_CONCURRENT" default:"4"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("haq", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// DataSource maps the runtime configuration onto a source description.
func (c *Config) DataSource() *sources.DataSource {
	if sources.SourceType(c.SourceType) == sources.SourceTypeClickhouse {
		return &sources.DataSource{
			Type:  sources.SourceTypeClickhouse,
			Table: c.ClickhouseTable,
			Configuration: sources.ConnectionConfig{
				Host:     c.ClickhouseHost,
				Database: c.ClickhouseDatabase,
				Username: c.ClickhouseUsername,
				Password: c.ClickhousePassword,
			},
		}
	}
	return &sources.DataSource{
		Type: sources.SourceTypeCSV,
		Path: c.DatasetPath,
	}
}

// SlogLevel maps the configured level name to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
