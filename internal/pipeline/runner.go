package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"rewardscope/internal/aggregate"
	"rewardscope/internal/metrics"
	"rewardscope/internal/model"
	"rewardscope/internal/normalize"
	"rewardscope/internal/storage"
)

const (
	maxLoggedLine = 512
	kindOversized = "oversized"
)

// RunConfig holds runtime settings for a run.
type RunConfig struct {
	InputPath      string
	TrackTransfers bool
	BurnAccounts   normalize.AccountSet
	// MaxLineBytes caps the length of a line that is parsed. Longer lines
	// are skipped with a warning. Defaults to 10 MiB.
	MaxLineBytes int
}

// Sinks are the outputs of a run. Event sinks get every accepted reward as
// soon as its line is parsed; summary sinks get the per-account summary
// once the input is consumed. Aggregation only runs when a summary sink is
// configured.
type Sinks struct {
	Events    []storage.EventSink
	Summaries []storage.SummarySink
	Rejects   storage.RejectSink
}

// Stats counts what a run saw.
type Stats struct {
	Lines     uint64
	Rewards   uint64
	Transfers uint64
	Burned    uint64
	Rejected  uint64
	Oversized uint64
	Accounts  int
}

// Runner streams a node log through the parser into the sinks.
type Runner struct {
	cfg        RunConfig
	sinks      Sinks
	parser     *normalize.Parser
	aggregator *aggregate.Aggregator
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, sinks Sinks, m *metrics.Metrics, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.BurnAccounts == nil {
		cfg.BurnAccounts = normalize.NewAccountSet(normalize.DefaultBurnAccount)
	}

	summarize := len(sinks.Summaries) > 0
	r := &Runner{
		cfg:     cfg,
		sinks:   sinks,
		metrics: m,
		logger:  logger,
		parser: normalize.NewParser(normalize.ParserConfig{
			BurnAccounts:  cfg.BurnAccounts,
			SkipTransfers: !(summarize && cfg.TrackTransfers),
			Logger:        logger,
		}),
	}
	if summarize {
		r.aggregator = aggregate.NewAggregator(aggregate.Config{Excluded: cfg.BurnAccounts}, logger)
	}
	return r
}

// Run opens the configured input and processes it.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	if r.cfg.InputPath == "" {
		return Stats{}, fmt.Errorf("input path is required")
	}
	file, err := os.Open(r.cfg.InputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return r.Process(ctx, file)
}

// Process reads input line by line. Each line is fully dispatched, event
// sink writes included, before the next one is read.
func (r *Runner) Process(ctx context.Context, input io.Reader) (Stats, error) {
	if len(r.sinks.Events) == 0 && len(r.sinks.Summaries) == 0 {
		return Stats{}, fmt.Errorf("no output configured")
	}

	reader := newLineReader(input, r.cfg.MaxLineBytes)

	var stats Stats
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		line, size, err := reader.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}

		stats.Lines++
		r.metrics.LinesRead.Inc()
		if size > reader.max {
			stats.Oversized++
			r.metrics.LinesRejected.WithLabelValues(kindOversized).Inc()
			r.logger.Warn("skip oversized line",
				zap.Uint64("line_number", stats.Lines),
				zap.Int("bytes", size),
				zap.Int("max_bytes", reader.max),
			)
			continue
		}
		if err := r.processLine(stats.Lines, line, &stats); err != nil {
			return stats, err
		}
	}

	if r.aggregator != nil {
		summaries := r.aggregator.Summaries()
		stats.Accounts = len(summaries)
		r.metrics.AccountsTracked.Set(float64(len(summaries)))
		for _, sink := range r.sinks.Summaries {
			if err := sink.WriteSummaries(summaries); err != nil {
				return stats, fmt.Errorf("write summary: %w", err)
			}
		}
	}

	r.logger.Info("run complete",
		zap.Uint64("lines", stats.Lines),
		zap.Uint64("rewards", stats.Rewards),
		zap.Uint64("transfers", stats.Transfers),
		zap.Uint64("burned", stats.Burned),
		zap.Uint64("rejected", stats.Rejected),
		zap.Uint64("oversized", stats.Oversized),
		zap.Int("accounts", stats.Accounts),
	)
	return stats, nil
}

func (r *Runner) processLine(lineNumber uint64, line string, stats *Stats) error {
	res := r.parser.Parse(line)
	if !res.Matched() {
		return nil
	}

	for _, reject := range res.Rejects {
		stats.Rejected++
		r.metrics.LinesRejected.WithLabelValues(reject.Kind).Inc()
		r.logger.Warn("skip line",
			zap.Uint64("line_number", lineNumber),
			zap.String("kind", reject.Kind),
			zap.Error(reject.Err),
			zap.String("line", truncate(line, maxLoggedLine)),
		)
		if r.sinks.Rejects != nil {
			err := r.sinks.Rejects.WriteReject(model.RejectedLine{
				LineNumber: lineNumber,
				Kind:       reject.Kind,
				Reason:     reject.Err.Error(),
				Line:       line,
			})
			if err != nil {
				return fmt.Errorf("write reject: %w", err)
			}
		}
	}

	if res.Burned {
		stats.Burned++
		r.metrics.BurnedRewards.Inc()
	}

	if res.Reward != nil {
		stats.Rewards++
		r.metrics.RewardsApplied.Inc()
		if r.aggregator != nil {
			r.aggregator.ApplyReward(*res.Reward)
		}
		for _, sink := range r.sinks.Events {
			if err := sink.WriteReward(*res.Reward); err != nil {
				return fmt.Errorf("write reward event: %w", err)
			}
		}
	}

	if res.Transfer != nil {
		stats.Transfers++
		r.metrics.TransfersSeen.Inc()
		if r.aggregator != nil {
			r.aggregator.ApplyTransfer(*res.Transfer)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
