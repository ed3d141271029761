package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rewardscope/internal/config"
	"rewardscope/internal/metrics"
	"rewardscope/internal/normalize"
	"rewardscope/internal/pipeline"
	"rewardscope/internal/storage"
)

func runEvents(cmd *cobra.Command, args []string) (err error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadEvents(cfgFile, cmd.Flags(), args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := &outputs{}
	defer out.close(&err, logger)

	eventCSV, err := storage.NewEventCSV(cfg.Out)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	out.add("output", eventCSV.Close)
	out.sinks.Events = append(out.sinks.Events, eventCSV)

	if err := out.openShared(ctx, cfg.Common); err != nil {
		return err
	}
	if pgSink := out.postgresSink(ctx, cfg.Common, runID, logger); pgSink != nil {
		out.sinks.Events = append(out.sinks.Events, pgSink)
	}

	m := metrics.New()
	runner := pipeline.NewRunner(pipeline.RunConfig{
		InputPath:    cfg.Input,
		BurnAccounts: normalize.NewAccountSet(cfg.BurnAccounts...),
	}, out.sinks, m, logger)

	logger.Info("events start",
		zap.String("in", cfg.Input),
		zap.String("out", cfg.Out),
		zap.String("rejects", cfg.Rejects),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Strings("burn_accounts", cfg.BurnAccounts),
	)

	if _, err := runner.Run(ctx); err != nil {
		return err
	}
	return writeMetrics(cfg.MetricsFile, m, logger)
}
