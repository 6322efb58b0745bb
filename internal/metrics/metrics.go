// Package metrics exports assessment counters to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trident"

// Metrics holds the registered collectors. A nil *Metrics records nothing.
type Metrics struct {
	answers      *prometheus.CounterVec
	sessions     *prometheus.CounterVec
	guidance     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the collectors with reg, or the default registerer when reg
// is nil. Registering twice against the same registry reuses the existing
// collectors.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var (
		m   Metrics
		err error
	)
	if m.answers, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_total",
		Help:      "Answers submitted, by outcome.",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if m.sessions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Session lifecycle events, by action.",
	}, []string{"action"})); err != nil {
		return nil, err
	}
	if m.guidance, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guidance_total",
		Help:      "Guidance served, by source.",
	}, []string{"source"})); err != nil {
		return nil, err
	}
	if m.httpRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route and status.",
	}, []string{"method", "route", "status"})); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}
	return &m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

// Answer outcomes.
const (
	OutcomeRecorded = "recorded"
	OutcomeRejected = "rejected"
)

// AnswerRecorded counts an accepted answer.
func (m *Metrics) AnswerRecorded() {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(OutcomeRecorded).Inc()
}

// AnswerRejected counts an answer refused by validation.
func (m *Metrics) AnswerRejected() {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(OutcomeRejected).Inc()
}

// SessionEvent counts a lifecycle action such as start, resume or reset.
func (m *Metrics) SessionEvent(action string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(action).Inc()
}

// GuidanceServed counts guidance by source.
func (m *Metrics) GuidanceServed(source string) {
	if m == nil {
		return
	}
	m.guidance.WithLabelValues(source).Inc()
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
