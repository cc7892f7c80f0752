package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order creation and notification dispatch outcomes.
type OrderMetrics struct {
	ordersCreated prometheus.Counter
	notifySuccess prometheus.Counter
	notifyFailure prometheus.Counter
	notifySkipped prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted by the storefront.",
	})
	notifySuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notifications_sent_total",
		Help: "Order notifications delivered to the WhatsApp gateway.",
	})
	notifyFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notifications_failed_total",
		Help: "Order notification dispatches that failed.",
	})
	notifySkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notifications_skipped_total",
		Help: "Order notifications skipped because no api key is configured.",
	})
	reg.MustRegister(ordersCreated, notifySuccess, notifyFailure, notifySkipped)
	return &OrderMetrics{
		ordersCreated: ordersCreated,
		notifySuccess: notifySuccess,
		notifyFailure: notifyFailure,
		notifySkipped: notifySkipped,
	}
}

// IncOrderCreated increments the created-orders counter.
func (m *OrderMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncNotifySuccess increments the delivered-notifications counter.
func (m *OrderMetrics) IncNotifySuccess() {
	if m == nil || m.notifySuccess == nil {
		return
	}
	m.notifySuccess.Inc()
}

// IncNotifyFailure increments the failed-notifications counter.
func (m *OrderMetrics) IncNotifyFailure() {
	if m == nil || m.notifyFailure == nil {
		return
	}
	m.notifyFailure.Inc()
}

// IncNotifySkipped increments the skipped-notifications counter.
func (m *OrderMetrics) IncNotifySkipped() {
	if m == nil || m.notifySkipped == nil {
		return
	}
	m.notifySkipped.Inc()
}
