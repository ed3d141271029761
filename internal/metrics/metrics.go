package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters of a single run in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	LinesRead       prometheus.Counter
	RewardsApplied  prometheus.Counter
	TransfersSeen   prometheus.Counter
	BurnedRewards   prometheus.Counter
	LinesRejected   *prometheus.CounterVec
	AccountsTracked prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LinesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewardscope_lines_read_total",
			Help: "Total number of log lines read from the input.",
		}),
		RewardsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewardscope_rewards_total",
			Help: "Total number of reward events accepted.",
		}),
		TransfersSeen: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewardscope_transfers_total",
			Help: "Total number of transaction processed events accepted.",
		}),
		BurnedRewards: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewardscope_burned_rewards_total",
			Help: "Total number of reward events credited to a burn account and dropped.",
		}),
		LinesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewardscope_rejected_total",
			Help: "Total number of event lines skipped, labelled by event kind.",
		}, []string{"kind"}),
		AccountsTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rewardscope_accounts",
			Help: "Number of accounts in the summary.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
