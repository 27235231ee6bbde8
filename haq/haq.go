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

// Package haq wires the library pieces together for embedding callers: it
// resolves a configured data source, builds a validator over the loaded
// snapshot and exposes the library version.
package haq

import (
	"context"
	"log/slog"

	haqcore "github.com/harshrajput4343/Healthcare-Analytics-Project"
	"github.com/harshrajput4343/Healthcare-Analytics-Project/sources"
)

const (
	Version = "v0.2.0"
)

func GetHaqCoreLibVersion() string {
	return Version
}

// LoadDataset reads the dataset described by the data source.
func LoadDataset(ctx context.Context, dataSource *sources.DataSource, logger *slog.Logger) (*haqcore.Dataset, error) {
	return sources.Load(ctx, dataSource, logger)
}

// NewValidator builds a data quality validator over a dataset snapshot. A
// nil config selects the default healthcare configuration.
func NewValidator(dataset *haqcore.Dataset, cfg *haqcore.ValidationConfig, logger *slog.Logger) *haqcore.DataQualityValidator {
	return haqcore.NewDataQualityValidator(dataset, cfg, logger)
}
