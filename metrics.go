package itemsets

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics Mine reports every run to.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
	Transactions  prometheus.Gauge
	MinCount      prometheus.Gauge
	FrequentTotal *prometheus.GaugeVec
}

/*
NewMetrics creates the mining metrics and registers them on reg.

Metrics:
  - itemsets_runs_total{algorithm} - Count of mining runs
  - itemsets_run_duration_seconds{algorithm} - Histogram of mining times
  - itemsets_transactions - Transactions mined on the last run
  - itemsets_min_support_count - Support threshold of the last run
  - itemsets_frequent{size} - Frequent itemsets per size on the last run
*/
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemsets_runs_total",
				Help: "Total number of mining runs",
			},
			[]string{"algorithm"},
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemsets_run_duration_seconds",
				Help:    "Duration of mining runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"algorithm"},
		),
		Transactions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "itemsets_transactions",
				Help: "Number of transactions mined on the last run",
			},
		),
		MinCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "itemsets_min_support_count",
				Help: "Minimum number of transactions a frequent itemset needed on the last run",
			},
		),
		FrequentTotal: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "itemsets_frequent",
				Help: "Number of frequent itemsets found on the last run by itemset size",
			},
			[]string{"size"},
		),
	}
}

// Observe records a finished run.
func (m *Metrics) Observe(r *Result) {
	if m == nil {
		return
	}
	algorithm := string(r.Algorithm)
	m.RunsTotal.WithLabelValues(algorithm).Inc()
	m.RunDuration.WithLabelValues(algorithm).Observe(r.Duration.Seconds())
	m.Transactions.Set(float64(r.Table.Total()))
	m.MinCount.Set(float64(r.MinCount))
	m.FrequentTotal.Reset()
	for _, e := range r.Table.Entries() {
		m.FrequentTotal.WithLabelValues(strconv.Itoa(e.Itemset.Len())).Inc()
	}
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, as read by the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
