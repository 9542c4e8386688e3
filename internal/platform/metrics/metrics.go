package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by lookup and purchase metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeBadData     = "bad_data"
	OutcomeRejected    = "rejected"
	OutcomeEmptyCart   = "empty_cart"
)

var durationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics holds the Prometheus collectors for a checkout session.
type Metrics struct {
	Lookups          *prometheus.CounterVec
	LookupDuration   prometheus.Histogram
	Purchases        *prometheus.CounterVec
	PurchaseDuration prometheus.Histogram
	CartLines        prometheus.Gauge
	RejectedActions  *prometheus.CounterVec
}

// New creates and registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_product_lookups_total",
			Help: "Total number of product lookups by outcome",
		}, []string{"outcome"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pos_product_lookup_duration_seconds",
			Help:    "Duration of catalog round trips",
			Buckets: durationBuckets,
		}),
		Purchases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_purchases_total",
			Help: "Total number of purchase submissions by outcome",
		}, []string{"outcome"}),
		PurchaseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pos_purchase_duration_seconds",
			Help:    "Duration of sales service round trips",
			Buckets: durationBuckets,
		}),
		CartLines: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pos_cart_lines",
			Help: "Current number of lines in the session cart",
		}),
		RejectedActions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_session_rejected_actions_total",
			Help: "Operator actions rejected by the session state machine",
		}, []string{"action"}),
	}
}

// ObserveLookup records a catalog round trip.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveLookup(outcome string, start time.Time) {
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

// ObservePurchase records a sales round trip.
func (m *Metrics) ObservePurchase(outcome string, start time.Time) {
	m.Purchases.WithLabelValues(outcome).Inc()
	m.PurchaseDuration.Observe(time.Since(start).Seconds())
}

// IncrementPurchase counts a purchase that never left the terminal.
func (m *Metrics) IncrementPurchase(outcome string) {
	m.Purchases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetCartLines(n int) {
	m.CartLines.Set(float64(n))
}

func (m *Metrics) IncrementRejected(action string) {
	m.RejectedActions.WithLabelValues(action).Inc()
}
