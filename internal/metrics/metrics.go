// Package metrics collects and exposes Prometheus metrics for the
// storefront's state engines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records storefront events. A nil *Collector is safe to call,
// so headless engine tests can skip metrics entirely.
type Collector struct {
	registrations    prometheus.Counter
	logins           prometheus.Counter
	cartMutations    *prometheus.CounterVec
	ordersSubmitted  prometheus.Counter
	orderSubmitFails prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulseralux_registrations_total",
			Help: "Total successful account registrations.",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulseralux_logins_total",
			Help: "Total successful logins.",
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulseralux_cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		ordersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulseralux_orders_submitted_total",
			Help: "Orders accepted by the relay.",
		}),
		orderSubmitFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulseralux_order_submit_failures_total",
			Help: "Order submissions rejected or failed.",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.cartMutations,
		c.ordersSubmitted,
		c.orderSubmitFails,
	)

	return c
}

// RecordRegistration counts a successful registration.
func (c *Collector) RecordRegistration() {
	if c == nil {
		return
	}
	c.registrations.Inc()
}

// RecordLogin counts a successful login.
func (c *Collector) RecordLogin() {
	if c == nil {
		return
	}
	c.logins.Inc()
}

// RecordCartMutation counts a cart mutation by operation name.
func (c *Collector) RecordCartMutation(op string) {
	if c == nil {
		return
	}
	c.cartMutations.WithLabelValues(op).Inc()
}

// RecordOrderSubmitted counts an order accepted by the relay.
func (c *Collector) RecordOrderSubmitted() {
	if c == nil {
		return
	}
	c.ordersSubmitted.Inc()
}

// RecordOrderFailed counts a failed order submission.
func (c *Collector) RecordOrderFailed() {
	if c == nil {
		return
	}
	c.orderSubmitFails.Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
