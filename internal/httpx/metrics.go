package httpx

import (
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	mutations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Successful catalog writes by resource and operation.",
		}, []string{"resource", "op"}),
	}
	reg.MustRegister(m.mutations)
	return m
}

func (m *Metrics) mutation(resource string, op catalog.Op) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(resource, string(op)).Inc()
}
