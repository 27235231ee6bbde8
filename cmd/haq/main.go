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

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/harshrajput4343/Healthcare-Analytics-Project/haq"
	"github.com/harshrajput4343/Healthcare-Analytics-Project/pipeline"
)

func main() {
	scheduled := flag.Bool("schedule", false, "run on the configured cron schedule instead of once")
	showVersion := flag.Bool("version", false, "print the library version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(haq.GetHaqCoreLibVersion())
		return
	}

	cfg, err := pipeline.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, logger)

	if *scheduled {
		if err := runner.Schedule(ctx); err != nil && ctx.Err() == nil {
			logger.Error("scheduler failed", "error", err.Error())
			os.Exit(1)
		}
		return
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Error("pipeline run failed", "error", err.Error())
		os.Exit(1)
	}

	fmt.Printf("\nOverall Quality Score: %.2f%%\n", summary.QualityScore)
	fmt.Printf("Critical Issues: %d\n", summary.CriticalIssues)
	fmt.Printf("Total Recommendations: %d\n", summary.Recommendations)
	fmt.Printf("Reports saved with timestamp: %s\n", summary.ReportTimestamp)
}
