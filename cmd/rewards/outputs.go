package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rewardscope/internal/config"
	"rewardscope/internal/metrics"
	"rewardscope/internal/pipeline"
	"rewardscope/internal/storage"
	"rewardscope/internal/storage/postgres"
)

type namedCloser struct {
	name  string
	close func() error
}

// outputs owns every sink opened for a run.
type outputs struct {
	sinks   pipeline.Sinks
	closers []namedCloser
	store   *postgres.Store
}

func (o *outputs) add(name string, close func() error) {
	o.closers = append(o.closers, namedCloser{name: name, close: close})
}

// openShared opens the rejects file and the Postgres export when configured.
func (o *outputs) openShared(ctx context.Context, cfg config.Common) error {
	if cfg.Rejects != "" {
		rejects, err := storage.NewRejectWriter(cfg.Rejects)
		if err != nil {
			return fmt.Errorf("open rejects: %w", err)
		}
		o.sinks.Rejects = rejects
		o.add("rejects", rejects.Close)
	}

	if cfg.PGDSN == "" {
		return nil
	}
	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	o.store = store
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (o *outputs) postgresSink(ctx context.Context, cfg config.Common, runID string, logger *zap.Logger) *postgres.Sink {
	if o.store == nil {
		return nil
	}
	sink := postgres.NewSink(ctx, o.store, postgres.SinkConfig{
		RunID:        runID,
		BatchSize:    cfg.BatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	o.add("postgres", sink.Close)
	return sink
}

// close releases every output in reverse order of opening. The first close
// error is reported through errp when the run itself succeeded.
func (o *outputs) close(errp *error, logger *zap.Logger) {
	for i := len(o.closers) - 1; i >= 0; i-- {
		c := o.closers[i]
		if err := c.close(); err != nil {
			logger.Error("close output", zap.String("output", c.name), zap.Error(err))
			if *errp == nil {
				*errp = fmt.Errorf("close %s: %w", c.name, err)
			}
		}
	}
	if o.store != nil {
		o.store.Close()
	}
}

func writeMetrics(path string, m *metrics.Metrics, logger *zap.Logger) error {
	if path == "" {
		return nil
	}
	if err := m.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logger.Debug("metrics written", zap.String("path", path))
	return nil
}
