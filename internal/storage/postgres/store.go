package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewardscope/internal/model"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS account_reward_summary (
	run_id      TEXT    NOT NULL,
	account     TEXT    NOT NULL,
	rewards     BIGINT  NOT NULL,
	amount      NUMERIC NOT NULL,
	out_txs     BIGINT  NOT NULL,
	in_txs      BIGINT  NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, account)
)`, `
CREATE TABLE IF NOT EXISTS reward_events (
	run_id      TEXT    NOT NULL,
	seq         BIGINT  NOT NULL,
	ts_ms       BIGINT  NOT NULL,
	layer_id    BIGINT  NOT NULL,
	amount      NUMERIC NOT NULL,
	account     TEXT    NOT NULL,
	PRIMARY KEY (run_id, seq)
)`,
}

// dbConn is the part of *pgxpool.Pool the store uses.
type dbConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store provides Postgres persistence for run output.
type Store struct {
	db   dbConn
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: pool, pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the output tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// RewardRow is a reward event tagged with its position in the run.
type RewardRow struct {
	Seq   uint64
	Event model.RewardEvent
}

const upsertSummarySQL = `
	INSERT INTO account_reward_summary (
		run_id, account, rewards, amount, out_txs, in_txs, created_at
	) VALUES ($1, $2, $3, $4::numeric, $5, $6, now())
	ON CONFLICT (run_id, account)
	DO UPDATE SET
		rewards = EXCLUDED.rewards,
		amount = EXCLUDED.amount,
		out_txs = EXCLUDED.out_txs,
		in_txs = EXCLUDED.in_txs
`

const insertRewardEventSQL = `
	INSERT INTO reward_events (run_id, seq, ts_ms, layer_id, amount, account)
	VALUES ($1, $2, $3, $4, $5::numeric, $6)
	ON CONFLICT (run_id, seq) DO NOTHING
`

// UpsertSummaries inserts or replaces the account summaries of a run.
func (s *Store) UpsertSummaries(ctx context.Context, runID string, summaries []model.AccountSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	if runID == "" {
		return fmt.Errorf("run id required")
	}
	return s.sendBatch(ctx, summaryBatch(runID, summaries))
}

// InsertRewardEvents appends reward events of a run.
func (s *Store) InsertRewardEvents(ctx context.Context, runID string, rows []RewardRow) error {
	if len(rows) == 0 {
		return nil
	}
	if runID == "" {
		return fmt.Errorf("run id required")
	}
	return s.sendBatch(ctx, rewardEventBatch(runID, rows))
}

func summaryBatch(runID string, summaries []model.AccountSummary) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, sum := range summaries {
		batch.Queue(upsertSummarySQL,
			runID,
			sum.Account,
			int64(sum.RewardCount),
			numeric(sum.TotalRewardAmount),
			int64(sum.OutgoingTransferCount),
			int64(sum.IncomingTransferCount),
		)
	}
	return batch
}

func rewardEventBatch(runID string, rows []RewardRow) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertRewardEventSQL,
			runID,
			int64(row.Seq),
			row.Event.Timestamp,
			int64(row.Event.LayerID),
			numeric(row.Event.Amount),
			row.Event.Account,
		)
	}
	return batch
}

// numeric renders an amount as NUMERIC input text.
func numeric(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
