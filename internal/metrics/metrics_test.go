package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObservePlan("strategy", time.Now(), nil)
	m.ObservePlan("smart", time.Now(), errors.New("invalid"))
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveFacts(10, 2, 1)
	m.ObserveSync(7, nil)
	m.ObserveSync(0, errors.New("meta down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanBuilds.WithLabelValues("strategy", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanBuilds.WithLabelValues("smart", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlanCacheHits.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PlanCacheHits.WithLabelValues("miss")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.FactRows.WithLabelValues("parsed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FactRows.WithLabelValues("dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FactRows.WithLabelValues("unmatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.SyncRowsSynced))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PlanDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObservePlan("strategy", time.Now(), nil)
		m.ObserveCache(true)
		m.ObserveFacts(1, 1, 1)
		m.ObserveSync(1, nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveCache(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `media_planner_plan_cache_lookups_total{result="hit"} 1`)
}
