package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rewards",
		Short:        "Node log reward and transaction summarizer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	summaryCmd := &cobra.Command{
		Use:   "summary [input] [output]",
		Short: "Aggregate rewards and transactions per account",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runSummary,
	}

	addCommonFlags(summaryCmd)
	summaryCmd.Flags().Bool("track-transfers", true, "count outgoing/incoming transactions per account")
	summaryCmd.Flags().String("events-out", "", "also write per-reward rows to this CSV path")

	root.AddCommand(summaryCmd)

	eventsCmd := &cobra.Command{
		Use:   "events [input] [output]",
		Short: "Write one CSV row per reward event",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runEvents,
	}

	addCommonFlags(eventsCmd)

	root.AddCommand(eventsCmd)

	return root
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "input node log file")
	cmd.Flags().String("out", "logs.csv", "output CSV path")
	cmd.Flags().String("rejects", "", "write skipped lines to this JSONL path")
	cmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path")
	cmd.Flags().StringSlice("burn-account", []string{"0x00000"}, "accounts excluded from the output (comma-separated)")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN to export results")
	cmd.Flags().Int("batch-size", 1000, "reward events per Postgres batch")
	cmd.Flags().Int("max-retries", 3, "maximum Postgres retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial Postgres retry backoff")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
