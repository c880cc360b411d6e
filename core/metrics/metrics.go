// Package metrics exposes the bot's Prometheus collectors and their HTTP endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadbot"

var (
	updatesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Telegram updates handled, by kind and status.",
		},
		[]string{"kind", "status"},
	)

	handlerDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Time spent inside update handlers.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	messagesSentCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages sent back to users while handling updates.",
		},
	)

	leadsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_total",
			Help:      "Completed lead forms, by service.",
		},
		[]string{"service"},
	)

	notifyCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_notifications_total",
			Help:      "Operator notifications, by status.",
		},
		[]string{"status"}, // ok, fail
	)

	broadcastRecipientsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_recipients_total",
			Help:      "Broadcast delivery attempts, by result.",
		},
		[]string{"result"}, // sent, unreachable, failed
	)

	broadcastDurationHist = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "broadcast_duration_seconds",
			Help:      "Wall time of a whole broadcast run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	dispatchRetriesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_retries_total",
			Help:      "Retried deliveries in the async sender.",
		},
	)
)

// ObserveUpdate records one handled update.
func ObserveUpdate(kind, status string, handler string, took time.Duration) {
	updatesCounter.WithLabelValues(kind, status).Inc()
	if handler == "" {
		handler = "unknown"
	}
	handlerDurationHist.WithLabelValues(handler).Observe(took.Seconds())
}

// AddMessagesSent counts replies produced by a handler.
func AddMessagesSent(n int) {
	if n > 0 {
		messagesSentCounter.Add(float64(n))
	}
}

// IncLead counts a completed lead for service.
func IncLead(service string) {
	leadsCounter.WithLabelValues(service).Inc()
}

// IncNotify counts an operator notification outcome.
func IncNotify(ok bool) {
	status := "ok"
	if !ok {
		status = "fail"
	}
	notifyCounter.WithLabelValues(status).Inc()
}

// AddBroadcast records the per-recipient results of one broadcast run.
func AddBroadcast(sent, unreachable, failed int, took time.Duration) {
	broadcastRecipientsCounter.WithLabelValues("sent").Add(float64(sent))
	broadcastRecipientsCounter.WithLabelValues("unreachable").Add(float64(unreachable))
	broadcastRecipientsCounter.WithLabelValues("failed").Add(float64(failed))
	broadcastDurationHist.Observe(took.Seconds())
}

// IncDispatchRetry counts one retry in the async sender.
func IncDispatchRetry() {
	dispatchRetriesCounter.Inc()
}
