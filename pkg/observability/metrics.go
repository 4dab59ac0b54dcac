package observability

import (
	"context"

	"github.com/aretw0/quotient/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quotient"

// Metrics records pipeline activity as Prometheus series.
type Metrics struct {
	stages    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	states    *prometheus.HistogramVec
	cacheHits prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_total",
				Help:      "Pipeline stages run, by stage and outcome.",
			},
			[]string{"stage", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each pipeline stage.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		states: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_output_states",
				Help:      "Number of states produced by each successful stage.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"stage"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Conversions served from the store.",
		}),
	}

	for _, c := range []prometheus.Collector{m.stages, m.duration, m.states, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			stage := string(e.Stage)
			m.duration.WithLabelValues(stage).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.stages.WithLabelValues(stage, "error").Inc()
				return
			}
			m.stages.WithLabelValues(stage, "ok").Inc()
			m.states.WithLabelValues(stage).Observe(float64(e.OutputStates))
		},
		OnCacheHit: func(context.Context, *domain.CacheEvent) {
			m.cacheHits.Inc()
		},
	}
}
