// Package prometheus exposes the pipeline counters over a dedicated
// registry.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	"github.com/wishwell/wishwell/internal/application/reminder"
)

// Metrics owns the registry and every collector the pipelines report to.
type Metrics struct {
	registry *prometheus.Registry

	dispatchAccounts  *prometheus.CounterVec
	dispatchReminders *prometheus.CounterVec
	dispatchRuns      prometheus.Histogram

	giftRequests   *prometheus.CounterVec
	giftSuggested  prometheus.Counter
	giftGeneration prometheus.Histogram
}

// NewMetrics builds a registry with the standard process and Go
// collectors plus the pipeline collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		dispatchAccounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wishwell",
			Subsystem: "dispatch",
			Name:      "accounts_total",
			Help:      "Accounts processed by the reminder dispatch, by outcome.",
		}, []string{"outcome"}),
		dispatchReminders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wishwell",
			Subsystem: "dispatch",
			Name:      "reminders_total",
			Help:      "Reminder deliveries attempted, by outcome.",
		}, []string{"outcome"}),
		dispatchRuns: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wishwell",
			Subsystem: "dispatch",
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete dispatch runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		giftRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wishwell",
			Subsystem: "gift",
			Name:      "requests_total",
			Help:      "Gift suggestion requests, by outcome.",
		}, []string{"outcome"}),
		giftSuggested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wishwell",
			Subsystem: "gift",
			Name:      "suggestions_total",
			Help:      "Suggestions returned to callers.",
		}),
		giftGeneration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wishwell",
			Subsystem: "gift",
			Name:      "generation_duration_seconds",
			Help:      "Latency of text-generation calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Dispatch returns the reminder pipeline's metrics sink.
func (m *Metrics) Dispatch() reminder.Metrics { return dispatchSink{m} }

// Gift returns the suggestion pipeline's metrics sink.
func (m *Metrics) Gift() giftapp.Metrics { return giftSink{m} }

type dispatchSink struct{ m *Metrics }

func (s dispatchSink) AccountScanned()   { s.m.dispatchAccounts.WithLabelValues("scanned").Inc() }
func (s dispatchSink) AccountFailed()    { s.m.dispatchAccounts.WithLabelValues("failed").Inc() }
func (s dispatchSink) ReminderSent()     { s.m.dispatchReminders.WithLabelValues("sent").Inc() }
func (s dispatchSink) SendFailed()       { s.m.dispatchReminders.WithLabelValues("failed").Inc() }
func (s dispatchSink) TokenInvalidated() { s.m.dispatchReminders.WithLabelValues("dead_token").Inc() }
func (s dispatchSink) RunCompleted(d time.Duration) {
	s.m.dispatchRuns.Observe(d.Seconds())
}

type giftSink struct{ m *Metrics }

func (s giftSink) RequestAdmitted()        { s.m.giftRequests.WithLabelValues("admitted").Inc() }
func (s giftSink) RequestRejected()        { s.m.giftRequests.WithLabelValues("invalid").Inc() }
func (s giftSink) RateLimited()            { s.m.giftRequests.WithLabelValues("rate_limited").Inc() }
func (s giftSink) ParseFailed()            { s.m.giftRequests.WithLabelValues("parse_failed").Inc() }
func (s giftSink) SuggestionsServed(n int) { s.m.giftSuggested.Add(float64(n)) }
func (s giftSink) GenerationLatency(d time.Duration) {
	s.m.giftGeneration.Observe(d.Seconds())
}
