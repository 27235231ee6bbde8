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

package pipeline

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Schedule runs the pipeline on the configured cron expression until the
// context is cancelled. A failed run is logged and does not stop the
// schedule.
func (r *Runner) Schedule(ctx context.Context) error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(r.cfg.ReportSchedule, func() {
		if _, err := r.Run(ctx); err != nil {
			r.logger.Error("scheduled pipeline run failed", "error", err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", r.cfg.ReportSchedule, err)
	}

	r.logger.Info("report scheduler started", "schedule", r.cfg.ReportSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	<-ctx.Done()
	r.logger.Info("report scheduler stopped")
	return ctx.Err()
}
