package normalize

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRewardDecodesStringAmount(t *testing.T) {
	event, err := Reward(`{"account": "0xabc", "reward": "100", "layer_id": 5}`, 1609459200000, NewAccountSet(DefaultBurnAccount), zap.NewNop())
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	if event.Account != "0xabc" || event.LayerID != 5 || event.Timestamp != 1609459200000 {
		t.Fatalf("event mismatch: %+v", event)
	}
	if event.Amount.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("amount mismatch: %s", event.Amount)
	}
}

func TestRewardAmountBeyondUint64(t *testing.T) {
	event, err := Reward(`{"account": "0xabc", "reward": 123456789012345678901234567890}`, 0, nil, nil)
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	if event.Amount.String() != "123456789012345678901234567890" {
		t.Fatalf("amount mismatch: %s", event.Amount)
	}
	if event.LayerID != 0 {
		t.Fatalf("missing layer_id should be 0, got %d", event.LayerID)
	}
}

func TestRewardHexAmountAndStringLayer(t *testing.T) {
	event, err := Reward(`{"account": "0xabc", "reward": "0x64", "layer_id": "12"}`, 0, nil, nil)
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	if event.Amount.Int64() != 100 || event.LayerID != 12 {
		t.Fatalf("event mismatch: %+v", event)
	}
}

func TestRewardHexAmountWithLeadingZeros(t *testing.T) {
	event, err := Reward(`{"account": "0xabc", "reward": "0x0064"}`, 0, nil, nil)
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	if event.Amount.Int64() != 100 {
		t.Fatalf("amount mismatch: %s", event.Amount)
	}
}

func TestRewardHexAmountBeyond256Bits(t *testing.T) {
	payload := `{"account": "0xabc", "reward": "0x1` + strings.Repeat("0", 64) + `"}`
	event, err := Reward(payload, 0, nil, nil)
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 256)
	if event.Amount.Cmp(want) != 0 {
		t.Fatalf("amount mismatch: got %s want %s", event.Amount, want)
	}
}

func TestRewardInvalidLayerKeepsAmount(t *testing.T) {
	cases := map[string]string{
		"negative":  `-1`,
		"word":      `"abc"`,
		"fraction":  `1.0`,
		"too large": `18446744073709551616`,
	}

	for name, layer := range cases {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			payload := `{"account": "0xabc", "reward": "5", "layer_id": ` + layer + `}`
			event, err := Reward(payload, 0, nil, zap.New(core))
			if err != nil {
				t.Fatalf("reward: %v", err)
			}
			if event.LayerID != 0 || event.Amount.Int64() != 5 || event.Account != "0xabc" {
				t.Fatalf("event mismatch: %+v", event)
			}
			if logs.FilterMessage("invalid layer_id, using 0").Len() != 1 {
				t.Fatalf("expected one debug entry, got %v", logs.All())
			}
		})
	}
}

func TestRewardBurnAccountIsFiltered(t *testing.T) {
	_, err := Reward(`{"account": "0x00000", "reward": "not-a-number"}`, 0, NewAccountSet(DefaultBurnAccount), zap.NewNop())
	if !errors.Is(err, ErrBurnAccount) {
		t.Fatalf("expected burn filter, got %v", err)
	}
}

func TestRewardMalformed(t *testing.T) {
	cases := map[string]string{
		"invalid json":    `{"account": "0xabc", "reward": }`,
		"missing account": `{"reward": "1"}`,
		"missing reward":  `{"account": "0xabc"}`,
		"negative reward": `{"account": "0xabc", "reward": "-5"}`,
		"float reward":    `{"account": "0xabc", "reward": 1.5}`,
		"exponent reward": `{"account": "0xabc", "reward": 1e3}`,
		"bad hex reward":  `{"account": "0xabc", "reward": "0xzz"}`,
		"empty hex":       `{"account": "0xabc", "reward": "0x"}`,
		"signed hex":      `{"account": "0xabc", "reward": "0x-1"}`,
		"object reward":   `{"account": "0xabc", "reward": {"v": 1}}`,
		"numeric account": `{"account": 12, "reward": "1"}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Reward(payload, 0, NewAccountSet(DefaultBurnAccount), zap.NewNop())
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("expected malformed payload, got %v", err)
			}
		})
	}
}
