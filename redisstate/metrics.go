package redisstate

import "github.com/prometheus/client_golang/prometheus"

const (
	layoutFlat    = "flat"
	layoutGrouped = "grouped"

	opGetKeys   = "get_keys"
	opSetKeys   = "set_keys"
	opSaveCreds = "save_creds"
)

// Metrics holds operation counters for the stores. Stores run without
// metrics unless [WithMetrics] is supplied; a nil *Metrics is a no-op.
type Metrics struct {
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the store counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wastate",
			Name:      "store_operations_total",
			Help:      "Store operations issued, by layout and operation.",
		}, []string{"layout", "op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wastate",
			Name:      "store_operation_failures_total",
			Help:      "Store operations that failed, by layout and operation.",
		}, []string{"layout", "op"}),
	}
	reg.MustRegister(m.ops, m.failures)
	return m
}

func (m *Metrics) observe(layout, op string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(layout, op).Inc()
}

func (m *Metrics) observeError(layout, op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(layout, op).Inc()
}
