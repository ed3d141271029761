package storage

import (
	"math/big"
	"strconv"
	"strings"

	"rewardscope/internal/model"
)

// Column separator of every CSV this tool writes. Fields are never quoted.
const fieldSeparator = ", "

var (
	summaryHeader       = []string{"account", "rewards", "amount", "out_txs", "in_txs"}
	rewardSummaryHeader = []string{"account", "rewards", "amount"}
	eventHeader         = []string{"time-stamp", "layer_id", "reward_amount", "reward_account"}
)

func joinFields(fields ...string) []byte {
	return []byte(strings.Join(fields, fieldSeparator))
}

// SummaryCSV writes one row per account after the input is consumed.
type SummaryCSV struct {
	out            *lineFile
	trackTransfers bool
}

// NewSummaryCSV creates path. With trackTransfers false the transfer
// columns are left out.
func NewSummaryCSV(path string, trackTransfers bool) (*SummaryCSV, error) {
	out, err := openLineFile(path)
	if err != nil {
		return nil, err
	}
	return &SummaryCSV{out: out, trackTransfers: trackTransfers}, nil
}

func (w *SummaryCSV) WriteSummaries(summaries []model.AccountSummary) error {
	header := summaryHeader
	if !w.trackTransfers {
		header = rewardSummaryHeader
	}
	if err := w.out.writeLine(joinFields(header...)); err != nil {
		return err
	}

	for _, s := range summaries {
		fields := []string{
			s.Account,
			strconv.FormatUint(s.RewardCount, 10),
			amountString(s.TotalRewardAmount),
		}
		if w.trackTransfers {
			fields = append(fields,
				strconv.FormatUint(s.OutgoingTransferCount, 10),
				strconv.FormatUint(s.IncomingTransferCount, 10),
			)
		}
		if err := w.out.writeLine(joinFields(fields...)); err != nil {
			return err
		}
	}
	return w.out.flush()
}

func (w *SummaryCSV) Close() error {
	if w == nil {
		return nil
	}
	return w.out.close()
}

// EventCSV streams one row per accepted reward, flushing every row.
type EventCSV struct {
	out *lineFile
}

// NewEventCSV creates path and writes the header.
func NewEventCSV(path string) (*EventCSV, error) {
	out, err := openLineFile(path)
	if err != nil {
		return nil, err
	}
	if err := out.writeLine(joinFields(eventHeader...)); err != nil {
		out.close()
		return nil, err
	}
	if err := out.flush(); err != nil {
		out.close()
		return nil, err
	}
	return &EventCSV{out: out}, nil
}

func (w *EventCSV) WriteReward(event model.RewardEvent) error {
	line := joinFields(
		strconv.FormatInt(event.Timestamp, 10),
		strconv.FormatUint(event.LayerID, 10),
		amountString(event.Amount),
		event.Account,
	)
	if err := w.out.writeLine(line); err != nil {
		return err
	}
	return w.out.flush()
}

func (w *EventCSV) Close() error {
	if w == nil {
		return nil
	}
	return w.out.close()
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
