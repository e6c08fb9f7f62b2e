package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/authchain/authchain/pkg/authz"
)

var (
	// AttributeCollectLatency tracks the latency of attribute collection operations
	AttributeCollectLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "authchain",
			Subsystem: "attribute_provider",
			Name:      "collect_latency_seconds",
			Help:      "Time spent in AttributeProvider.Collect()",
		},
		[]string{"provider"},
	)

	// AttributeCollectErrors tracks attribute collection errors
	AttributeCollectErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "authchain",
			Subsystem: "attribute_provider",
			Name:      "collect_errors_total",
			Help:      "Number of attribute collection errors",
		},
		[]string{"provider", "error_type"},
	)

	// AttributeStaleness tracks attributes that were marked as stale
	AttributeStaleness = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "authchain",
			Subsystem: "attribute_provider",
			Name:      "stale_attributes_total",
			Help:      "Number of attributes that were marked as stale",
		},
		[]string{"provider"},
	)

	// DecisionsTotal counts surfaced decisions by policy and outcome
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "authchain",
			Subsystem: "engine",
			Name:      "decisions_total",
			Help:      "Number of policy decisions by outcome",
		},
		[]string{"policy", "outcome"},
	)

	// DecisionLatency tracks the latency of full chain walks
	DecisionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "authchain",
			Subsystem: "engine",
			Name:      "decision_latency_seconds",
			Help:      "Time spent walking the evaluator chain and combining",
		},
		[]string{"policy"},
	)
)

// ObserveDecision records a surfaced decision result.
func ObserveDecision(result authz.Result) {
	DecisionsTotal.WithLabelValues(result.PolicyID, result.Decision.String()).Inc()
	DecisionLatency.WithLabelValues(result.PolicyID).Observe(result.EvalDuration.Seconds())
}

// ObserveCollect records one attribute collection attempt.
func ObserveCollect(provider string, duration time.Duration, errType string) {
	AttributeCollectLatency.WithLabelValues(provider).Observe(duration.Seconds())
	if errType != "" {
		AttributeCollectErrors.WithLabelValues(provider, errType).Inc()
	}
}

// MustRegister registers all metrics with the default Prometheus registry
func MustRegister() {
	prometheus.MustRegister(
		AttributeCollectLatency,
		AttributeCollectErrors,
		AttributeStaleness,
		DecisionsTotal,
		DecisionLatency,
	)
}
