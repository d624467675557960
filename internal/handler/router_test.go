package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/training-capacity-api/internal/service"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	validate := validator.New()
	metrics := service.NewMetricsService()

	auth, err := service.NewAuthService(validate, nil, service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		AdminUsername:     "admin",
		AdminPassword:     "chargecapa@2025",
		HashCost:          bcrypt.MinCost,
	})
	require.NoError(t, err)

	engine := service.NewAssignmentEngine(st, metrics, nil, service.AssignmentEngineConfig{})
	workload := service.NewWorkloadService(st, metrics, nil)
	planner := service.NewPlanningService(st, nil, service.PlanningServiceConfig{})
	capacity := service.NewCapacityService(service.CapacityServiceParams{Store: st, Planner: planner, Metrics: metrics})
	dashboard := service.NewDashboardService(service.DashboardServiceParams{Store: st, Workload: workload})

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Auth:     NewAuthHandler(auth),
		Trainers: NewTrainerHandler(service.NewTrainerService(st, validate, nil)),
		Modules:  NewModuleHandler(service.NewModuleService(st, validate, nil)),
		Rooms:    NewRoomHandler(service.NewRoomService(st, validate, nil)),
		TrainingGroup: NewTrainingGroupHandler(service.NewTrainingGroupService(service.TrainingGroupServiceParams{
			Store: st, Engine: engine, Validator: validate,
		})),
		Schedules:  NewScheduleHandler(service.NewScheduleService(st, validate, nil)),
		Competency: NewCompetencyHandler(service.NewCompetencyService(st, validate, nil)),
		Capacity: NewCapacityHandler(CapacityHandlerParams{
			Workload:     workload,
			Planning:     planner,
			Capacity:     capacity,
			Recalculator: engine,
			Reports:      service.NewExportService(workload, planner, nil, nil, nil),
		}),
		Dashboard: NewDashboardHandler(dashboard),
		Metrics:   NewMetricsHandler(metrics, nil),
	}, auth)

	return &testServer{t: t, engine: r}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var payload []byte
	if body != nil {
		payload = mustJSON(s.t, body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "chargecapa@2025"})
	require.Equal(s.t, http.StatusOK, w.Code)
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(s.t, jsonUnmarshal(decodeEnvelope(s.t, w).Data, &data))
	require.NotEmpty(s.t, data.AccessToken)
	s.token = data.AccessToken
}

func TestRoutesRequireAdminToken(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/api/v1/trainers", nil).Code)

	w := srv.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	srv.token = "not-a-jwt"
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/api/v1/trainers", nil).Code)

	srv.token = ""
	srv.login()
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/v1/auth/me", nil).Code)
}

func TestRoutesPlanGroupEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	srv.login()

	w := srv.do(http.MethodPost, "/api/v1/trainers", map[string]interface{}{
		"name": "Alice", "maxHoursPerWeek": 35, "specialties": []string{"Soudure"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(http.MethodPost, "/api/v1/modules", map[string]interface{}{
		"name": "Soudure TIG", "totalHours": 40, "sessionsPerWeek": 2, "hoursPerSession": 2, "type": "practical",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(http.MethodPost, "/api/v1/training-groups", map[string]interface{}{
		"name": "Groupe A", "participantCount": 12, "startDate": "2024-03-04",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"unassignedModules":[]`)

	w = srv.do(http.MethodGet, "/api/v1/schedules", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"startDate":"2024-03-04`)

	w = srv.do(http.MethodGet, "/api/v1/capacity/trainer-workload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), "Alice")

	w = srv.do(http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w).Meta["cache_hit"])

	w = srv.do(http.MethodPost, "/api/v1/capacity/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"recalculated":1`)

	w = srv.do(http.MethodGet, "/api/v1/capacity/export?view=trainers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Body.String(), "Alice")

	w = srv.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "assignment_modules_total")
}
