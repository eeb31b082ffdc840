package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Recorder instruments a single pipeline run with Prometheus collectors.
// The process is single-shot, so there is no scrape endpoint: the registry is
// private and read back in-process via Summary at the end of the run.
type Recorder struct {
	registry       *prometheus.Registry
	rowsLoaded     prometheus.Counter
	signalsFlagged prometheus.Counter
	stageDuration  *prometheus.HistogramVec
}

// New creates a run recorder with its own registry, so repeated in-process
// runs (tests) do not collide on collector registration.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		rowsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "signalrun_rows_loaded_total",
			Help: "Total number of input rows loaded",
		}),
		signalsFlagged: factory.NewCounter(prometheus.CounterOpts{
			Name: "signalrun_signals_flagged_total",
			Help: "Total number of rows with a buy signal",
		}),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signalrun_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordRowsLoaded records the input row count.
func (r *Recorder) RecordRowsLoaded(n int) {
	r.rowsLoaded.Add(float64(n))
}

// RecordSignalsFlagged records how many rows carried a buy signal.
func (r *Recorder) RecordSignalsFlagged(n int) {
	r.signalsFlagged.Add(float64(n))
}

// ObserveStage records a stage duration.
func (r *Recorder) ObserveStage(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// Summary gathers the registry into "name{labels} value" lines for the log.
func (r *Recorder) Summary() []string {
	families, err := r.registry.Gather()
	if err != nil {
		return []string{fmt.Sprintf("gather failed: %v", err)}
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := formatLabels(m); labels != "" {
				name += "{" + labels + "}"
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%gs", name, h.GetSampleCount(), h.GetSampleSum()))
			case dto.MetricType_GAUGE:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			}
		}
	}
	sort.Strings(lines)
	return lines
}

func formatLabels(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return strings.Join(pairs, ",")
}
