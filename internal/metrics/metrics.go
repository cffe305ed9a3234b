package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultRejected    = "rejected"
	ResultUnreachable = "unreachable"
	ResultIgnored     = "ignored"
	ResultError       = "error"
)

type Metrics struct {
	registry        *prometheus.Registry
	InitTotal       *prometheus.CounterVec
	WebhookTotal    *prometheus.CounterVec
	GatewayDuration prometheus.Histogram
}

// New registers the service collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		InitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "praxis_init_total",
			Help: "Payment initiations by result.",
		}, []string{"result"}),
		WebhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "praxis_webhook_total",
			Help: "Gateway notifications by result.",
		}, []string{"result"}),
		GatewayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "praxis_gateway_duration_seconds",
			Help:    "Latency of cashier calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.InitTotal,
		m.WebhookTotal,
		m.GatewayDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
