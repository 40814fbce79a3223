package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hotel"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	once sync.Once

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by kind and outcome.",
		},
		[]string{"transition", "outcome"},
	)

	availabilityRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_rejections_total",
			Help:      "Availability checks that were not admissible, by reason.",
		},
		[]string{"reason"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status class.",
		},
		[]string{"route", "status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingTransitions, availabilityRejections, httpRequests)
	})
}

// IncTransition counts a lifecycle transition attempt.
func IncTransition(transition string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	bookingTransitions.WithLabelValues(transition, outcome).Inc()
}

func IncRejection(reason string) {
	availabilityRejections.WithLabelValues(reason).Inc()
}

func IncHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}
