package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

// counterValue reads a single series from the private registry.
func counterValue(t *testing.T, m *MetricsService, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	series:
		for _, metric := range family.GetMetric() {
			found := 0
			for _, pair := range metric.GetLabel() {
				want, ok := labels[pair.GetName()]
				if !ok {
					continue
				}
				if want != pair.GetValue() {
					continue series
				}
				found++
			}
			if found != len(labels) {
				continue
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	return 0
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordCacheOperation(true, time.Millisecond)
		m.ObserveAssignment(1, 0, 1, time.Millisecond)
		m.RecordSnapshotFlush(nil)
		m.RecordJob("x", nil)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsServiceRecords(t *testing.T) {
	m := NewMetricsService()

	m.ObserveAssignment(3, 1, 2, time.Millisecond)
	m.ObserveWorkload([]models.TrainerWorkload{{TrainerID: "t1", OccupationRate: 80}})
	m.ObserveConstraints([]models.TrainerConstraint{{IsOverloaded: true}}, nil)
	m.RecordJob(JobCapacityRecalculate, errors.New("x"))
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	assert.Equal(t, 3.0, counterValue(t, m, "assignment_modules_total", map[string]string{"outcome": "scheduled"}))
	assert.Equal(t, 2.0, counterValue(t, m, "assignment_modules_total", map[string]string{"outcome": "discovered"}))
	assert.Equal(t, 80.0, counterValue(t, m, "trainer_occupation_rate", map[string]string{"trainer_id": "t1"}))
	assert.Equal(t, 1.0, counterValue(t, m, "capacity_overloaded_resources", map[string]string{"resource": "trainer"}))
	assert.Equal(t, 1.0, counterValue(t, m, "background_jobs_total", map[string]string{"type": JobCapacityRecalculate, "result": "error"}))
	assert.Equal(t, 0.5, counterValue(t, m, "cache_hit_ratio", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "assignment_pass_duration_seconds")
}
