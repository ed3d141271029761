package storage

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"rewardscope/internal/model"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "logs.csv")
	w, err := NewSummaryCSV(path, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	amount, _ := new(big.Int).SetString("18446744073709551616", 10)
	err = w.WriteSummaries([]model.AccountSummary{
		{Account: "0xAAA", AccountStats: model.AccountStats{TotalRewardAmount: new(big.Int), OutgoingTransferCount: 1}},
		{Account: "0xabc", AccountStats: model.AccountStats{RewardCount: 2, TotalRewardAmount: amount, IncomingTransferCount: 3}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := "account, rewards, amount, out_txs, in_txs\n" +
		"0xAAA, 0, 0, 1, 0\n" +
		"0xabc, 2, 18446744073709551616, 0, 3\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("csv mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryCSVWithoutTransfers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	w, err := NewSummaryCSV(path, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = w.WriteSummaries([]model.AccountSummary{
		{Account: "0xabc", AccountStats: model.AccountStats{RewardCount: 1, TotalRewardAmount: big.NewInt(9), OutgoingTransferCount: 4}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	want := "account, rewards, amount\n0xabc, 1, 9\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("csv mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestEventCSVFlushesEachRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	w, err := NewEventCSV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer w.Close()

	if got := readFile(t, path); got != "time-stamp, layer_id, reward_amount, reward_account\n" {
		t.Fatalf("header not flushed on open: %q", got)
	}

	event := model.RewardEvent{Account: "0xabc", LayerID: 5, Amount: big.NewInt(100), Timestamp: 1609459200000}
	if err := w.WriteReward(event); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "time-stamp, layer_id, reward_amount, reward_account\n" +
		"1609459200000, 5, 100, 0xabc\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("row not flushed before close:\n%s", got)
	}
}

func TestOpenFailsOnDirectory(t *testing.T) {
	if _, err := NewEventCSV(t.TempDir()); err == nil {
		t.Fatalf("expected error opening a directory")
	}
}
