package commit

import (
	"errors"
	"fmt"
	"time"

	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "svncommit"

type Metrics struct {
	commits  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	commits, err := register(registerer, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commits_total",
			Help:      "Commit tasks by source-control kind and outcome.",
		},
		[]string{"kind", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(registerer, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "commit_duration_seconds",
			Help:      "Duration of commit tasks.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	))
	if err != nil {
		return nil, err
	}

	return &Metrics{commits: commits, duration: duration}, nil
}

func (m *Metrics) observe(kind scm.Kind, status Status, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.commits.WithLabelValues(string(kind), string(status)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	if err := registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("failed to register metric: %w", err)
	}

	return collector, nil
}
