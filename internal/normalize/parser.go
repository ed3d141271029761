package normalize

import (
	"errors"

	"go.uber.org/zap"

	"rewardscope/internal/logline"
	"rewardscope/internal/model"
)

const (
	KindReward   = "reward"
	KindTransfer = "transfer"
)

// Reject describes why one classified part of a line was skipped.
type Reject struct {
	Kind string
	Err  error
}

// Result is everything recovered from a single log line.
type Result struct {
	Reward   *model.RewardEvent
	Transfer *model.TransferEvent
	Burned   bool
	Rejects  []Reject
}

// Matched reports whether the line carried any event marker.
func (r Result) Matched() bool {
	return r.Reward != nil || r.Transfer != nil || r.Burned || len(r.Rejects) > 0
}

// ParserConfig configures a Parser.
type ParserConfig struct {
	Extractor    logline.Extractor
	BurnAccounts AccountSet
	// SkipTransfers turns off the transfer classifier.
	SkipTransfers bool
	Logger        *zap.Logger
}

// Parser classifies a log line, extracts its payload and normalizes it.
type Parser struct {
	extractor     logline.Extractor
	burn          AccountSet
	skipTransfers bool
	logger        *zap.Logger
}

func NewParser(cfg ParserConfig) *Parser {
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = logline.BraceExtractor{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	burn := cfg.BurnAccounts
	if burn == nil {
		burn = NewAccountSet(DefaultBurnAccount)
	}

	return &Parser{
		extractor:     extractor,
		burn:          burn,
		skipTransfers: cfg.SkipTransfers,
		logger:        logger,
	}
}

// Parse evaluates both classifiers independently. A failure in one part of
// the line does not prevent the other part from being returned.
func (p *Parser) Parse(line string) Result {
	var res Result

	isReward := logline.IsRewardLine(line)
	isTransfer := !p.skipTransfers && logline.IsTransferLine(line)
	if !isReward && !isTransfer {
		return res
	}

	payload, ok := p.extractor.Extract(line)
	if !ok {
		if isReward {
			res.Rejects = append(res.Rejects, Reject{Kind: KindReward, Err: logline.ErrPayloadNotFound})
		}
		if isTransfer {
			res.Rejects = append(res.Rejects, Reject{Kind: KindTransfer, Err: logline.ErrPayloadNotFound})
		}
		return res
	}

	if isReward {
		ts, ok := logline.ParseTimestamp(line)
		if !ok {
			p.logger.Debug("no leading timestamp", zap.String("line", line))
		}
		event, err := Reward(payload, ts, p.burn, p.logger)
		switch {
		case errors.Is(err, ErrBurnAccount):
			res.Burned = true
		case err != nil:
			res.Rejects = append(res.Rejects, Reject{Kind: KindReward, Err: err})
		default:
			res.Reward = &event
		}
	}

	if isTransfer {
		event, err := Transfer(payload)
		if err != nil {
			res.Rejects = append(res.Rejects, Reject{Kind: KindTransfer, Err: err})
		} else {
			res.Transfer = &event
		}
	}

	return res
}
