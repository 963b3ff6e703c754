package memfs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics mirrors the counters/histograms a teacher `vfs` mount exposes via
// its `rc` remote-control stats endpoints, scoped here to the in-memory
// backend's own operations rather than a remote Fs.
type metrics struct {
	operations    *prometheus.CounterVec
	lockWait      *prometheus.HistogramVec
	heldShared    prometheus.Gauge
	heldExclusive prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vfscore",
			Subsystem: "memfs",
			Name:      "operations_total",
			Help:      "Count of memfs operations by verb and result.",
		}, []string{"op", "result"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vfscore",
			Subsystem: "memfs",
			Name:      "lock_wait_seconds",
			Help:      "Time spent blocked acquiring the global lock.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		heldShared: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vfscore",
			Subsystem: "memfs",
			Name:      "locks_shared_held",
			Help:      "Current number of shared holders of the global lock.",
		}),
		heldExclusive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vfscore",
			Subsystem: "memfs",
			Name:      "locks_exclusive_held",
			Help:      "Current number of exclusive holders of the global lock.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.lockWait, m.heldShared, m.heldExclusive)
	}
	return m
}

func (m *metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// enterGlobal records how long op waited for the global lock and bumps
// the held-count gauge for the mode it was granted in; the returned func
// reverses the gauge bump on release.
func (m *metrics) enterGlobal(op string, exclusive bool, waited time.Duration) func() {
	if m == nil {
		return func() {}
	}
	m.lockWait.WithLabelValues(op).Observe(waited.Seconds())
	gauge := m.heldShared
	if exclusive {
		gauge = m.heldExclusive
	}
	gauge.Inc()
	return gauge.Dec
}
