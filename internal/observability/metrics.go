package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one ETL
// run. Each Metrics carries its own registry so batch runs and tests never
// collide on registration; the registry is what gets pushed at the end of a
// run.
type Metrics struct {
	RowsLoaded    *prometheus.CounterVec   // labels: dataset={climate,fires,fema}
	RowsDropped   *prometheus.CounterVec   // labels: dataset, reason={bad_date,bad_value,bad_region}
	StageDuration *prometheus.HistogramVec // labels: stage={load,transform,integrate,report}
	TablesWritten prometheus.Counter
	ChartsDrawn   prometheus.Counter
	RunSuccess    prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all pipeline metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_etl",
			Name:      "rows_loaded_total",
			Help:      "Rows successfully parsed from each raw dataset.",
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_etl",
			Name:      "rows_dropped_total",
			Help:      "Unparseable rows dropped from each raw dataset.",
		}, []string{"dataset", "reason"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wildfire_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		TablesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_etl",
			Name:      "tables_written_total",
			Help:      "Processed CSV tables written to the processed directory.",
		}),
		ChartsDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_etl",
			Name:      "charts_rendered_total",
			Help:      "PNG charts rendered to the output directory.",
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_etl",
			Name:      "run_success",
			Help:      "1 when the last run completed without fatal errors, 0 otherwise.",
		}),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.StageDuration,
		m.TablesWritten,
		m.ChartsDrawn,
		m.RunSuccess,
	)

	return m
}

// Push sends the run's metrics to a Prometheus Pushgateway. A batch job has
// no scrape surface, so push is the only way counters leave the process.
func (m *Metrics) Push(url string) error {
	return push.New(url, "wildfire_climate_etl").Gatherer(m.registry).Push()
}
