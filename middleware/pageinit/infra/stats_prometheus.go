package infra

import (
	"context"

	"painel-web/middleware/pageinit/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusStats expõe os relatórios como counters.
// O label route usa apenas o método; path tem cardinalidade alta demais.
type PrometheusStats struct {
	pages    *prometheus.CounterVec
	widgets  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

var _ domain.StatsStore = (*PrometheusStats)(nil)

func NewPrometheusStats(reg prometheus.Registerer) (*PrometheusStats, error) {
	s := &PrometheusStats{
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pageinit",
			Name:      "pages_total",
			Help:      "Páginas HTML inicializadas.",
		}, []string{"method"}),
		widgets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pageinit",
			Name:      "widgets_total",
			Help:      "Widgets inicializados com sucesso, por categoria.",
		}, []string{"category"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pageinit",
			Name:      "failures_total",
			Help:      "Falhas de inicialização, por categoria.",
		}, []string{"category"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{s.pages, s.widgets, s.failures} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *PrometheusStats) Record(_ context.Context, ev domain.StatsEvent) error {
	method := ev.Method
	if method == "" {
		method = "unknown"
	}
	s.pages.WithLabelValues(method).Inc()

	rep := ev.Report
	s.widgets.WithLabelValues(string(domain.CategoryToast)).Add(float64(rep.ToastsShown))
	s.widgets.WithLabelValues(string(domain.CategoryForm)).Add(float64(rep.FormsBound))
	s.widgets.WithLabelValues(string(domain.CategoryTooltip)).Add(float64(rep.TooltipsReady))
	for _, f := range rep.Failures {
		s.failures.WithLabelValues(string(f.Category)).Inc()
	}
	return nil
}
