package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"elearning-notifier/internal/domain"
)

// DispatchMetrics records dispatch outcomes and send latency. It satisfies
// service.DispatchRecorder.
type DispatchMetrics struct {
	dispatches   *prometheus.CounterVec
	sendDuration *prometheus.HistogramVec
}

// NewDispatchMetrics creates the collectors and registers them on reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewDispatchMetrics(reg prometheus.Registerer) (*DispatchMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &DispatchMetrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notifier",
			Name:      "dispatch_total",
			Help:      "Notification email dispatches by outcome and notification type",
		}, []string{"outcome", "type"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notifier",
			Name:      "send_duration_seconds",
			Help:      "Mail transport send latency",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider", "result"}),
	}

	for _, c := range []prometheus.Collector{m.dispatches, m.sendDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordDispatch counts one dispatch. Unknown notification types share the
// "other" label to keep cardinality bounded.
func (m *DispatchMetrics) RecordDispatch(outcome, notificationType string) {
	label := notificationType
	if !domain.NotificationType(label).Known() {
		label = "other"
	}
	m.dispatches.WithLabelValues(outcome, label).Inc()
}

func (m *DispatchMetrics) ObserveSend(provider string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sendDuration.WithLabelValues(provider, result).Observe(elapsed.Seconds())
}
