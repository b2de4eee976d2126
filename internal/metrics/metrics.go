package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Searches counts /search calls by how they were answered:
	// substring, fallback or empty.
	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamio_search_requests_total",
			Help: "Total number of keyword searches by result mode",
		},
		[]string{"mode"},
	)

	DetailLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamio_detail_lookups_total",
			Help: "Total number of detail lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	IdentityRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamio_identity_requests_total",
			Help: "Calls to the identity provider by outcome",
		},
		[]string{"outcome"},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roamio_circuit_breaker_state",
			Help: "Current circuit breaker state per upstream",
		},
		[]string{"name"},
	)
)

func RecordSearch(mode string) {
	Searches.WithLabelValues(mode).Inc()
}

func RecordDetail(kind string, found bool) {
	outcome := "hit"
	if !found {
		outcome = "miss"
	}
	DetailLookups.WithLabelValues(kind, outcome).Inc()
}

func RecordIdentity(err error) {
	if err != nil {
		IdentityRequests.WithLabelValues("error").Inc()
		return
	}
	IdentityRequests.WithLabelValues("ok").Inc()
}

func SetBreakerState(name string, state float64) {
	BreakerState.WithLabelValues(name).Set(state)
}

// Handler exposes the default registry in Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
