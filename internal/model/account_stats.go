package model

import "math/big"

// AccountStats holds running per-account totals for a single run.
type AccountStats struct {
	RewardCount           uint64
	TotalRewardAmount     *big.Int
	OutgoingTransferCount uint64
	IncomingTransferCount uint64
}

// NewAccountStats returns zeroed stats.
func NewAccountStats() *AccountStats {
	return &AccountStats{TotalRewardAmount: new(big.Int)}
}

// AccountSummary is a snapshot row of AccountStats for output.
type AccountSummary struct {
	Account string
	AccountStats
}
