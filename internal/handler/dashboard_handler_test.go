package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

type fakeDashboardSrv struct {
	summary *models.DashboardSummary
	hit     bool
	err     error
}

func (f *fakeDashboardSrv) Summary(context.Context) (*models.DashboardSummary, bool, error) {
	return f.summary, f.hit, f.err
}

func TestDashboardHandlerSummaryCached(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{
		summary: &models.DashboardSummary{TrainerOccupationRate: 38, TotalTrainers: 2},
		hit:     true,
	})

	c, w := newGinContext(http.MethodGet, "/dashboard/summary", nil)
	handler.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Contains(t, env.Meta, "processing_time_ms")
	assert.Contains(t, string(env.Data), `"trainerOccupationRate":38`)
}

func TestDashboardHandlerSummaryError(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{err: errors.New("boom")})

	c, w := newGinContext(http.MethodGet, "/dashboard/summary", nil)
	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeEnvelope(t, w).Error.Code)
}
