package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for the pipeline.
type Metrics struct {
	CyclesTotal     prometheus.Counter
	FetchesTotal    prometheus.Counter
	FetchErrors     prometheus.Counter
	EmptySeries     prometheus.Counter
	IndicatorsTotal prometheus.Counter
	RecordErrors    prometheus.Counter
	DrainsTotal     prometheus.Counter
	DrainedRecords  prometheus.Counter

	reg prometheus.Registerer
}

// New creates all pipeline metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_cycles_total",
			Help: "Scheduler ticks fired.",
		}),
		FetchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_fetches_total",
			Help: "Quote history fetches attempted.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_fetch_errors_total",
			Help: "Provider errors collapsed to empty series.",
		}),
		EmptySeries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_empty_series_total",
			Help: "Cycles per symbol that produced no data.",
		}),
		IndicatorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_indicators_total",
			Help: "Indicator records computed.",
		}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_record_errors_total",
			Help: "Recorder write failures.",
		}),
		DrainsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_drains_total",
			Help: "Tail queries served.",
		}),
		DrainedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "watcher_drained_records_total",
			Help: "Records handed out over the tail query.",
		}),
		reg: reg,
	}
	reg.MustRegister(
		m.CyclesTotal, m.FetchesTotal, m.FetchErrors, m.EmptySeries,
		m.IndicatorsTotal, m.RecordErrors, m.DrainsTotal, m.DrainedRecords,
	)
	return m
}

// WatchBuffer exposes the ring buffer's occupancy and overflow evictions.
func (m *Metrics) WatchBuffer(lenFn func() int, droppedFn func() uint64) {
	m.reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "watcher_buffer_len",
			Help: "Records currently resident in the ring buffer.",
		}, func() float64 { return float64(lenFn()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "watcher_buffer_dropped_total",
			Help: "Records evicted because the ring buffer was full.",
		}, func() float64 { return float64(droppedFn()) }),
	)
}
