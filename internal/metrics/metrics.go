// Package metrics provides the Prometheus metrics registry for ticket builds.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

const namespace = "parlay_builder"

// Counter metrics
var (
	LegsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "legs_processed_total",
		Help:      "Slate rows processed by outcome (scored, skipped, rejected)",
	}, []string{"outcome"})
	TicketsBuiltTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_built_total",
		Help:      "Total number of tickets emitted by builder",
	}, []string{"builder"})
	BuildRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "build_runs_total",
		Help:      "Total number of build runs by status",
	}, []string{"status"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "build_cache_hits_total",
		Help:      "Total number of build runs served from cache",
	})
)

// Gauge metrics
var (
	PositiveEVTickets = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "positive_ev_tickets",
		Help:      "Positive EV tickets in the latest build by builder",
	}, []string{"builder"})
	LastBuildTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_build_timestamp_seconds",
		Help:      "Unix time of the latest completed build",
	})
)

// Histogram metrics
var (
	BuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Duration of build runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
	TicketExpectedValue = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ticket_expected_value",
		Help:      "EV per unit stake of emitted tickets",
		Buckets:   []float64{-0.5, -0.25, 0, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"builder"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(LegsProcessedTotal)
		registry.MustRegister(TicketsBuiltTotal)
		registry.MustRegister(BuildRunsTotal)
		registry.MustRegister(CacheHitsTotal)

		registry.MustRegister(PositiveEVTickets)
		registry.MustRegister(LastBuildTimestamp)

		registry.MustRegister(BuildDuration)
		registry.MustRegister(TicketExpectedValue)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordLegs records slate row outcomes.
func RecordLegs(scored, skipped, rejected int) {
	LegsProcessedTotal.WithLabelValues("scored").Add(float64(scored))
	LegsProcessedTotal.WithLabelValues("skipped").Add(float64(skipped))
	LegsProcessedTotal.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordTicket records one emitted ticket and its EV.
func RecordTicket(builder string, ev float64) {
	TicketsBuiltTotal.WithLabelValues(builder).Inc()
	TicketExpectedValue.WithLabelValues(builder).Observe(ev)
}

// UpdatePositiveEVTickets sets the positive EV ticket gauge for a builder.
func UpdatePositiveEVTickets(builder string, count int) {
	PositiveEVTickets.WithLabelValues(builder).Set(float64(count))
}

// RecordBuildRun records a build run outcome.
// status should be one of: "success", "failure", "cached"
func RecordBuildRun(status string, durationSeconds float64, unixTime int64) {
	BuildRunsTotal.WithLabelValues(status).Inc()
	if status == "cached" {
		CacheHitsTotal.Inc()
	}
	if status != "failure" {
		BuildDuration.Observe(durationSeconds)
		LastBuildTimestamp.Set(float64(unixTime))
	}
}
