package observability

import "github.com/prometheus/client_golang/prometheus"

// Operation labels for the rejected-operations counter.
const (
	OperationSignup = "signup"
	OperationRemove = "remove"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "registry",
		Name:      "signups_total",
		Help:      "Number of successful activity signups, labeled by activity.",
	}, []string{"activity"})

	removalCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "registry",
		Name:      "removals_total",
		Help:      "Number of participants removed from activities, labeled by activity.",
	}, []string{"activity"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster_service",
		Subsystem: "registry",
		Name:      "rejected_total",
		Help:      "Number of roster operations rejected, labeled by operation and reason.",
	}, []string{"operation", "reason"})

	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "roster_service",
		Subsystem: "registry",
		Name:      "participants",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(signupCounter, removalCounter, rejectedCounter, rosterGauge)
}

// RecordSignup counts a successful signup and updates the roster gauge.
func RecordSignup(activity string, rosterSize int) {
	signupCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordRemoval counts a successful removal and updates the roster gauge.
func RecordRemoval(activity string, rosterSize int) {
	removalCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordRejected counts a failed roster operation.
func RecordRejected(operation, reason string) {
	rejectedCounter.WithLabelValues(operation, reason).Inc()
}

// RecordRosterSize sets the roster gauge without touching the counters.
func RecordRosterSize(activity string, rosterSize int) {
	rosterGauge.WithLabelValues(activity).Set(float64(rosterSize))
}
