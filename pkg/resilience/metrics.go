package resilience

import (
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "landing_breaker_state",
		Help: "Breaker state per channel (0=closed, 0.5=half-open, 1=open)",
	}, []string{"breaker"})

	breakerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_breaker_calls_total",
		Help: "Breaker calls by outcome (ok, error, rejected)",
	}, []string{"breaker", "outcome"})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_breaker_state_changes_total",
		Help: "Breaker state transitions",
	}, []string{"breaker", "from", "to"})

	unnamedBreakers atomic.Uint64
)

const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

func breakerName(name string) string {
	if name != "" {
		return name
	}
	return "breaker-" + strconv.FormatUint(unnamedBreakers.Add(1), 10)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 0.5
	case gobreaker.StateOpen:
		return 1
	}
	return -1
}

func observeState(name string, s gobreaker.State) {
	breakerState.WithLabelValues(name).Set(stateValue(s))
}

func observeTransition(name string, from, to gobreaker.State) {
	breakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
	observeState(name, to)
}

func observeCall(name, outcome string) {
	breakerCalls.WithLabelValues(name, outcome).Inc()
}
