package aggregate

import (
	"sort"

	"go.uber.org/zap"

	"rewardscope/internal/model"
)

// Config controls aggregation behavior.
type Config struct {
	// Excluded accounts never get an entry, whichever side of an event they are on.
	Excluded map[string]struct{}
}

// Aggregator folds reward and transfer events into per-account stats.
// It is not safe for concurrent use.
type Aggregator struct {
	cfg          Config
	logger       *zap.Logger
	accumulators map[string]*accumulator
}

func NewAggregator(cfg Config, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{
		cfg:          cfg,
		logger:       logger,
		accumulators: make(map[string]*accumulator),
	}
}

// ApplyReward adds one reward to the event's account. It reports false when
// the account is excluded.
func (a *Aggregator) ApplyReward(event model.RewardEvent) bool {
	acc := a.get(event.Account)
	if acc == nil {
		return false
	}
	acc.addReward(event.Amount)
	return true
}

// ApplyTransfer counts an outgoing transfer for the origin and an incoming
// one for the recipient. A self-transfer bumps both counters of one entry.
func (a *Aggregator) ApplyTransfer(event model.TransferEvent) {
	if acc := a.get(event.Origin); acc != nil {
		acc.addOutgoing()
	}
	if acc := a.get(event.Recipient); acc != nil {
		acc.addIncoming()
	}
}

// Stats returns a copy of the stats for account.
func (a *Aggregator) Stats(account string) (model.AccountStats, bool) {
	acc, ok := a.accumulators[account]
	if !ok {
		return model.AccountStats{}, false
	}
	return acc.snapshot(account).AccountStats, true
}

// Len returns the number of tracked accounts.
func (a *Aggregator) Len() int {
	return len(a.accumulators)
}

// Summaries returns a snapshot of every account, sorted by account.
func (a *Aggregator) Summaries() []model.AccountSummary {
	keys := make([]string, 0, len(a.accumulators))
	for key := range a.accumulators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]model.AccountSummary, 0, len(keys))
	for _, key := range keys {
		out = append(out, a.accumulators[key].snapshot(key))
	}
	return out
}

func (a *Aggregator) get(account string) *accumulator {
	if _, ok := a.cfg.Excluded[account]; ok {
		return nil
	}
	acc := a.accumulators[account]
	if acc == nil {
		acc = newAccumulator()
		a.accumulators[account] = acc
		a.logger.Debug("new account", zap.String("account", account))
	}
	return acc
}
