package model

import "math/big"

// RewardEvent is a normalized "Reward applied" log record.
type RewardEvent struct {
	Account   string   `json:"account"`
	LayerID   uint64   `json:"layer_id"`
	Amount    *big.Int `json:"amount"`
	Timestamp int64    `json:"timestamp"`
}
