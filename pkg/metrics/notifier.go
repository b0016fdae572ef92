package metrics

import "github.com/prometheus/client_golang/prometheus"

// NotifierMetrics counts notification delivery outcomes.
type NotifierMetrics struct {
	delivered *prometheus.CounterVec
	failed    *prometheus.CounterVec
	skipped   *prometheus.CounterVec
}

// NewNotifierMetrics registers the notifier metrics on the provided registerer.
func NewNotifierMetrics(reg prometheus.Registerer) *NotifierMetrics {
	if reg == nil {
		return &NotifierMetrics{}
	}
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_delivered_total",
		Help: "Notifications delivered per channel.",
	}, []string{"channel"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_failed_total",
		Help: "Notification delivery failures per channel.",
	}, []string{"channel"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_skipped_total",
		Help: "Notifications skipped because the channel is not configured.",
	}, []string{"channel"})
	reg.MustRegister(delivered, failed, skipped)
	return &NotifierMetrics{
		delivered: delivered,
		failed:    failed,
		skipped:   skipped,
	}
}

// IncDelivered increments the delivered counter for the channel.
func (m *NotifierMetrics) IncDelivered(channel string) {
	if m == nil || m.delivered == nil {
		return
	}
	m.delivered.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncFailed increments the failure counter for the channel.
func (m *NotifierMetrics) IncFailed(channel string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncSkipped increments the skipped counter for the channel.
func (m *NotifierMetrics) IncSkipped(channel string) {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.WithLabelValues(normalizeLabel(channel)).Inc()
}
