// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Transition outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// SessionCounter reports the number of live sessions.
type SessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

// Metrics groups the collectors used across the service.
type Metrics struct {
	// Transitions counts ledger transitions by action and outcome.
	Transitions *prometheus.CounterVec
	// RPCDuration observes handler latency by procedure and code.
	RPCDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with a live
// session gauge and the Go runtime collectors, on reg.
func New(reg prometheus.Registerer, sessions SessionCounter) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitfriends",
			Name:      "ledger_transitions_total",
			Help:      "Ledger transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "splitfriends",
			Name:      "rpc_duration_seconds",
			Help:      "Connect handler latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(m.Transitions, m.RPCDuration)
	reg.MustRegister(collectors.NewGoCollector())

	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "splitfriends",
			Name:      "sessions",
			Help:      "Live ledger sessions.",
		}, func() float64 {
			n, err := sessions.CountSessions(context.Background())
			if err != nil {
				slog.Warn("Failed to count sessions", "error", err)
				return 0
			}
			return float64(n)
		}))
	}

	return m
}

// ObserveTransition counts one transition.
func (m *Metrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(action, outcome).Inc()
}
