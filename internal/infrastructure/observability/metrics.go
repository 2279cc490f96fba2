package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PaymentsSucceeded    prometheus.Counter
	PaymentsFailed       prometheus.Counter
	PaymentDuration      prometheus.Histogram
	TokensIssued         prometheus.Counter
	OrderTokensCaptured  prometheus.Counter
	HookExecutions       prometheus.Counter
	HookErrors           prometheus.Counter
	TokenValidationFails prometheus.Counter
}

// NewMetrics creates a new metrics collector registered on reg; a nil
// registerer falls back to the default registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		PaymentsSucceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_payments_succeeded_total",
			Help: "Total number of simulated payments that succeeded",
		}),
		PaymentsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_payments_failed_total",
			Help: "Total number of simulated payments that failed",
		}),
		PaymentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dummy_gateway_payment_duration_seconds",
			Help:    "Payment decision duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		}),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_tokens_issued_total",
			Help: "Total number of payment tokens issued",
		}),
		OrderTokensCaptured: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_order_tokens_captured_total",
			Help: "Total number of order tokens captured onto order metadata",
		}),
		HookExecutions: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_hook_executions_total",
			Help: "Total number of host hook handler executions",
		}),
		HookErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_hook_errors_total",
			Help: "Total number of host hook handler errors",
		}),
		TokenValidationFails: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummy_gateway_token_validation_failures_total",
			Help: "Total number of payment token validations that failed",
		}),
	}
}

// RecordPayment records the result and duration of a payment decision
func (m *Metrics) RecordPayment(duration time.Duration, err error) {
	m.PaymentDuration.Observe(duration.Seconds())
	if err != nil {
		m.PaymentsFailed.Inc()
		return
	}
	m.PaymentsSucceeded.Inc()
}

// RecordHook records a hook handler execution
func (m *Metrics) RecordHook(err error) {
	m.HookExecutions.Inc()
	if err != nil {
		m.HookErrors.Inc()
	}
}
