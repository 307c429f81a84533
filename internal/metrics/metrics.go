// Package metrics records case outcomes as prometheus metrics and exports them
// in the textfile collector format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"optest/internal/domain"
)

const (
	MetricsNamespace = "optest"
)

// Recorder is a fixture reporter backed by its own prometheus registry
type Recorder struct {
	registry *prometheus.Registry

	casesTotal   *prometheus.CounterVec
	caseDuration *prometheus.HistogramVec
	runTests     prometheus.Gauge
	runFailures  prometheus.Gauge
	runIgnored   prometheus.Gauge
	runDuration  prometheus.Gauge
	runSuccess   prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		casesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "cases_total",
			Help:      "Count of executed test cases by outcome",
		}, []string{
			"group",
			"case",
			"result",
		}),
		caseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "case_duration_seconds",
			Help:      "Duration of test cases including setup and teardown",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 10, 6),
		}, []string{
			"group",
		}),
		runTests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_tests",
			Help:      "Number of cases executed in the last run",
		}),
		runFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_failures",
			Help:      "Number of failed cases in the last run",
		}),
		runIgnored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_ignored",
			Help:      "Number of ignored cases in the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_success",
			Help:      "1 if the last run had no failures, 0 otherwise",
		}),
	}
	r.registry.MustRegister(
		r.casesTotal,
		r.caseDuration,
		r.runTests,
		r.runFailures,
		r.runIgnored,
		r.runDuration,
		r.runSuccess,
	)
	return r
}

// RunStarted is a no-op; counts are taken per case
func (r *Recorder) RunStarted(int) {}

// CaseFinished counts one case outcome
func (r *Recorder) CaseFinished(result domain.CaseResult) {
	r.casesTotal.WithLabelValues(result.Group, result.Case, resultLabel(result.State)).Inc()
	r.caseDuration.WithLabelValues(result.Group).Observe(result.Duration.Seconds())
}

// RunFinished records the run totals
func (r *Recorder) RunFinished(result *domain.RunResult) {
	r.runTests.Set(float64(result.Tests))
	r.runFailures.Set(float64(result.Failures))
	r.runIgnored.Set(float64(result.Ignored))
	r.runDuration.Set(result.Duration.Seconds())
	if result.OK() {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}
}

// WriteTextfile writes every metric to path for the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func resultLabel(s domain.CaseState) string {
	switch s {
	case domain.StatePassed:
		return "pass"
	case domain.StateFailed:
		return "fail"
	case domain.StateIgnored:
		return "skip"
	default:
		return "unknown"
	}
}
