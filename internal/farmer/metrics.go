package farmer

import "github.com/prometheus/client_golang/prometheus"

// Metrics are registered against a private registry owned by the Farmer
// instance (never the global default registry), so multiple farmers — as in
// tests — don't collide. Diagnostic only: nothing here feeds back into
// dispatch decisions.
type Metrics struct {
	Registry            *prometheus.Registry
	WorkersBusy         prometheus.Gauge
	BatchesDispatched   *prometheus.CounterVec
	AcceleratorFallback prometheus.Counter
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		WorkersBusy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "farmer_workers_busy",
			Help: "Number of workers currently executing a dispatched chunk.",
		}),
		BatchesDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farmer_batches_dispatched_total",
			Help: "Batches dispatched, labeled by worker kind.",
		}, []string{"worker_kind"}),
		AcceleratorFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmer_accelerator_fallback_total",
			Help: "Times dispatch fell back to the CPU pool because no accelerator was idle.",
		}),
	}

	reg.MustRegister(m.WorkersBusy, m.BatchesDispatched, m.AcceleratorFallback)
	return m
}
