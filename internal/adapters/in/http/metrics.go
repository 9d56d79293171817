package http

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts handled payment API requests by operation and status code.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fooddelivery",
			Subsystem: "payments",
			Name:      "requests_total",
			Help:      "Payment API requests by operation and HTTP status code.",
		}, []string{"operation", "code"}),
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *Metrics) observe(operation string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}
