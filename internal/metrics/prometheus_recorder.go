package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once sync.Once

	stageDuration  *prom.HistogramVec
	loopDuration   prom.Histogram
	stageResults   *prom.CounterVec
	loopOutcomes   *prom.CounterVec
	repairAttempts prom.Counter
	repairExhausted prom.Counter
	cacheHit       prom.Gauge
	cacheChanged   prom.Gauge
}

// NewPrometheusRecorder constructs and registers a fresh set of Prometheus
// metrics on reg on every call; registering twice on the same registry
// panics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "airengine",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual agent loop stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.loopDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "airengine",
			Name:      "loop_duration_seconds",
			Help:      "Total agent loop duration for one source",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "airengine",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.loopOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "airengine",
			Name:      "loop_outcomes_total",
			Help:      "Agent loop stop reasons",
		}, []string{"outcome"})
		pr.repairAttempts = prom.NewCounter(prom.CounterOpts{
			Namespace: "airengine",
			Name:      "repair_attempts_total",
			Help:      "Total repair attempts across all loops",
		})
		pr.repairExhausted = prom.NewCounter(prom.CounterOpts{
			Namespace: "airengine",
			Name:      "repair_attempts_exhausted_total",
			Help:      "Count of loops that hit max_attempts during repair",
		})
		pr.cacheHit = prom.NewGauge(prom.GaugeOpts{
			Namespace: "airengine",
			Name:      "cache_skipped_files",
			Help:      "Files skipped by the incremental cache on the last transpile",
		})
		pr.cacheChanged = prom.NewGauge(prom.GaugeOpts{
			Namespace: "airengine",
			Name:      "cache_changed_files",
			Help:      "Files changed (or new) on the last transpile",
		})
		reg.MustRegister(pr.stageDuration, pr.loopDuration, pr.stageResults, pr.loopOutcomes,
			pr.repairAttempts, pr.repairExhausted, pr.cacheHit, pr.cacheChanged)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage StageLabel, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveLoopDuration(d time.Duration) {
	if p == nil || p.loopDuration == nil {
		return
	}
	p.loopDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage StageLabel, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(string(stage), string(result)).Inc()
}

func (p *PrometheusRecorder) IncLoopOutcome(outcome LoopOutcomeLabel) {
	if p == nil || p.loopOutcomes == nil {
		return
	}
	p.loopOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRepairAttempt() {
	if p == nil || p.repairAttempts == nil {
		return
	}
	p.repairAttempts.Inc()
}

func (p *PrometheusRecorder) IncRepairAttemptExhausted() {
	if p == nil || p.repairExhausted == nil {
		return
	}
	p.repairExhausted.Inc()
}

func (p *PrometheusRecorder) SetCacheHitFiles(n int) {
	if p == nil || p.cacheHit == nil {
		return
	}
	p.cacheHit.Set(float64(n))
}

func (p *PrometheusRecorder) SetCacheChangedFiles(n int) {
	if p == nil || p.cacheChanged == nil {
		return
	}
	p.cacheChanged.Set(float64(n))
}
