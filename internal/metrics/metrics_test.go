package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsAreIsolated(t *testing.T) {
	a := New()
	b := New()
	a.LinesRead.Add(3)

	if got := testutil.ToFloat64(a.LinesRead); got != 3 {
		t.Fatalf("lines read mismatch: %v", got)
	}
	if got := testutil.ToFloat64(b.LinesRead); got != 0 {
		t.Fatalf("registries should not share counters: %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RewardsApplied.Inc()
	m.LinesRejected.WithLabelValues("reward").Inc()

	path := filepath.Join(t.TempDir(), "rewards.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "rewardscope_rewards_total 1") {
		t.Fatalf("missing rewards counter:\n%s", text)
	}
	if !strings.Contains(text, `rewardscope_rejected_total{kind="reward"} 1`) {
		t.Fatalf("missing rejected counter:\n%s", text)
	}
}
