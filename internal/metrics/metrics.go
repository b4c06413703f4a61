package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taskbot"

// Dialogue outcomes.
const (
	OutcomeStarted   = "started"
	OutcomeRestarted = "restarted"
	OutcomeRejected  = "rejected"
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// Metrics holds the bot's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	updates            *prometheus.CounterVec
	dialogues          *prometheus.CounterVec
	deadlineRejections prometheus.Counter
	rateLimited        prometheus.Counter
	handlerDuration    *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "updates_total",
				Help:      "Telegram updates processed, by command",
			},
			[]string{"command"},
		),
		dialogues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dialogues_total",
				Help:      "Add-task dialogues, by outcome",
			},
			[]string{"outcome"},
		),
		deadlineRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deadline_rejections_total",
			Help:      "Deadlines rejected as malformed",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Updates dropped by the per-user rate limit",
		}),
		handlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "handler_duration_seconds",
				Help:      "Time spent handling one update",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	registry.MustRegister(m.updates, m.dialogues, m.deadlineRejections, m.rateLimited, m.handlerDuration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) UpdateHandled(command string, seconds float64) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(command).Inc()
	m.handlerDuration.WithLabelValues(command).Observe(seconds)
}

func (m *Metrics) Dialogue(outcome string) {
	if m == nil {
		return
	}
	m.dialogues.WithLabelValues(outcome).Inc()
}

func (m *Metrics) DeadlineRejected() {
	if m == nil {
		return
	}
	m.deadlineRejections.Inc()
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
