package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rewardscope/internal/model"
)

type rewardPayload struct {
	Account *string         `json:"account"`
	Reward  json.RawMessage `json:"reward"`
	LayerID json.RawMessage `json:"layer_id"`
}

// Reward converts an extracted "Reward applied" payload into a RewardEvent.
// Rewards credited to an account in burn are reported as ErrBurnAccount
// before the amount is looked at. An unreadable layer_id is logged at debug
// and recorded as layer 0; the reward itself is kept.
func Reward(payload string, timestamp int64, burn AccountSet, logger *zap.Logger) (model.RewardEvent, error) {
	var data rewardPayload
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return model.RewardEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if data.Account == nil {
		return model.RewardEvent{}, fmt.Errorf("%w: missing account", ErrMalformedPayload)
	}
	if burn.Contains(*data.Account) {
		return model.RewardEvent{}, ErrBurnAccount
	}

	amount, err := parseAmount(data.Reward)
	if err != nil {
		return model.RewardEvent{}, fmt.Errorf("%w: reward: %v", ErrMalformedPayload, err)
	}
	layerID, err := parseLayerID(data.LayerID)
	if err != nil {
		if logger != nil {
			logger.Debug("invalid layer_id, using 0",
				zap.String("account", *data.Account),
				zap.ByteString("layer_id", data.LayerID),
				zap.Error(err),
			)
		}
		layerID = 0
	}

	return model.RewardEvent{
		Account:   *data.Account,
		LayerID:   layerID,
		Amount:    amount,
		Timestamp: timestamp,
	}, nil
}

// parseAmount accepts a JSON string or integer literal holding a decimal
// or 0x-prefixed hex amount. Neither form is bounded and hex digits may carry
// leading zeros.
func parseAmount(raw json.RawMessage) (*big.Int, error) {
	text, err := scalarText(raw)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("missing")
	}

	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		digits := text[2:]
		if !isHexDigits(digits) {
			return nil, fmt.Errorf("invalid hex: %s", text)
		}
		value, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, fmt.Errorf("invalid hex: %s", text)
		}
		return value, nil
	}

	if !isDigits(text) {
		return nil, fmt.Errorf("invalid int: %s", text)
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid int: %s", text)
	}
	return value, nil
}

func parseLayerID(raw json.RawMessage) (uint64, error) {
	text, err := scalarText(raw)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}
	return strconv.ParseUint(text, 10, 64)
}

// scalarText returns the trimmed text of a JSON string or number. A missing
// or null value yields "".
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw), nil
	default:
		return "", fmt.Errorf("unexpected value %s", raw)
	}
}

func isDigits(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

func isHexDigits(input string) bool {
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return input != ""
}
