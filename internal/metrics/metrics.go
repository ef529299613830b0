package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "media_planner"

// Metrics agrupa as métricas Prometheus do serviço
type Metrics struct {
	// Planejamento
	PlanBuilds    *prometheus.CounterVec
	PlanDuration  *prometheus.HistogramVec
	PlanCacheHits *prometheus.CounterVec

	// Fatos
	FactRows *prometheus.CounterVec

	// Sincronização
	SyncRuns       *prometheus.CounterVec
	SyncRowsSynced prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics cria e registra as métricas no registry informado
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PlanBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_builds_total",
				Help:      "Total number of plan builds by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		PlanDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_build_duration_seconds",
				Help:      "Plan build latency",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"mode"},
		),
		PlanCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_cache_lookups_total",
				Help:      "Plan cache lookups by result",
			},
			[]string{"result"},
		),
		FactRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fact_rows_total",
				Help:      "Fact rows seen during ingestion by status",
			},
			[]string{"status"},
		),
		SyncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fact_sync_runs_total",
				Help:      "Fact sync runs by outcome",
			},
			[]string{"outcome"},
		),
		SyncRowsSynced: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fact_sync_rows_total",
				Help:      "Fact rows upserted by the sync job",
			},
		),
		gatherer: reg,
	}
}

// ObservePlan registra um cálculo de plano
func (m *Metrics) ObservePlan(mode string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.PlanBuilds.WithLabelValues(mode, outcome).Inc()
	m.PlanDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.PlanCacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.PlanCacheHits.WithLabelValues("miss").Inc()
}

// ObserveFacts registra linhas aceitas, descartadas e sem correspondência
func (m *Metrics) ObserveFacts(parsed, dropped, unmatched int) {
	if m == nil {
		return
	}
	m.FactRows.WithLabelValues("parsed").Add(float64(parsed))
	m.FactRows.WithLabelValues("dropped").Add(float64(dropped))
	m.FactRows.WithLabelValues("unmatched").Add(float64(unmatched))
}

func (m *Metrics) ObserveSync(rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SyncRuns.WithLabelValues("error").Inc()
		return
	}
	m.SyncRuns.WithLabelValues("ok").Inc()
	m.SyncRowsSynced.Add(float64(rows))
}

// Handler expõe as métricas no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
