package aggregate

import (
	"math/big"

	"rewardscope/internal/model"
)

// accumulator wraps the running stats of one account.
type accumulator struct {
	stats *model.AccountStats
}

func newAccumulator() *accumulator {
	return &accumulator{stats: model.NewAccountStats()}
}

func (a *accumulator) addReward(amount *big.Int) {
	a.stats.RewardCount++
	if amount != nil {
		a.stats.TotalRewardAmount.Add(a.stats.TotalRewardAmount, amount)
	}
}

func (a *accumulator) addOutgoing() {
	a.stats.OutgoingTransferCount++
}

func (a *accumulator) addIncoming() {
	a.stats.IncomingTransferCount++
}

func (a *accumulator) snapshot(account string) model.AccountSummary {
	return model.AccountSummary{
		Account: account,
		AccountStats: model.AccountStats{
			RewardCount:           a.stats.RewardCount,
			TotalRewardAmount:     new(big.Int).Set(a.stats.TotalRewardAmount),
			OutgoingTransferCount: a.stats.OutgoingTransferCount,
			IncomingTransferCount: a.stats.IncomingTransferCount,
		},
	}
}
