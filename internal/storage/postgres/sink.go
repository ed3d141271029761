package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rewardscope/internal/model"
)

// SinkConfig controls how a Sink buffers and retries writes.
type SinkConfig struct {
	RunID        string
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Sink adapts a Store to the pipeline's event and summary sinks. Reward
// events are buffered up to BatchSize and written in one round trip.
type Sink struct {
	ctx     context.Context
	store   *Store
	cfg     SinkConfig
	logger  *zap.Logger
	pending []RewardRow
	seq     uint64
}

func NewSink(ctx context.Context, store *Store, cfg SinkConfig, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &Sink{
		ctx:     ctx,
		store:   store,
		cfg:     cfg,
		logger:  logger,
		pending: make([]RewardRow, 0, cfg.BatchSize),
	}
}

func (s *Sink) WriteReward(event model.RewardEvent) error {
	s.seq++
	s.pending = append(s.pending, RewardRow{Seq: s.seq, Event: event})
	if len(s.pending) >= s.cfg.BatchSize {
		return s.Flush()
	}
	return nil
}

func (s *Sink) WriteSummaries(summaries []model.AccountSummary) error {
	err := withRetry(s.ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		err := s.store.UpsertSummaries(ctx, s.cfg.RunID, summaries)
		if err != nil {
			s.logger.Warn("upsert summaries failed", zap.Error(err), zap.Int("accounts", len(summaries)))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("store summaries: %w", err)
	}
	return nil
}

// Flush writes buffered reward events.
func (s *Sink) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	err := withRetry(s.ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		err := s.store.InsertRewardEvents(ctx, s.cfg.RunID, s.pending)
		if err != nil {
			s.logger.Warn("insert reward events failed", zap.Error(err), zap.Int("rows", len(s.pending)))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("store reward events: %w", err)
	}
	s.pending = s.pending[:0]
	return nil
}

// Close flushes what is left. The Store is owned by the caller.
func (s *Sink) Close() error {
	return s.Flush()
}
