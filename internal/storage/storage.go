package storage

import "rewardscope/internal/model"

// EventSink receives accepted reward events in log order.
type EventSink interface {
	WriteReward(event model.RewardEvent) error
}

// SummarySink receives the per-account summary once the input is consumed.
type SummarySink interface {
	WriteSummaries(summaries []model.AccountSummary) error
}

// RejectSink receives lines skipped by recoverable parse errors.
type RejectSink interface {
	WriteReject(reject model.RejectedLine) error
}
