package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation. All methods are nil-safe.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheLookups    *prometheus.CounterVec

	assignmentDuration prometheus.Observer
	assignmentOutcomes *prometheus.CounterVec
	trainerOccupation  *prometheus.GaugeVec
	roomOccupation     *prometheus.GaugeVec
	overloaded         *prometheus.GaugeVec
	snapshotFlushes    *prometheus.CounterVec
	jobsProcessed      *prometheus.CounterVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the service collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	assignmentDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assignment_pass_duration_seconds",
		Help:    "Duration of one auto-assignment pass",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	})

	assignmentOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_modules_total",
		Help: "Modules processed by the assignment engine by outcome",
	}, []string{"outcome"})

	trainerOccupation := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trainer_occupation_rate",
		Help: "Weekly occupation rate per active trainer, in percent",
	}, []string{"trainer_id"})

	roomOccupation := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "room_occupation_rate",
		Help: "Weekly occupation rate per active room, in percent",
	}, []string{"room_id"})

	overloaded := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "capacity_overloaded_resources",
		Help: "Resources above 100% occupation in the last analysis",
	}, []string{"resource"})

	snapshotFlushes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_flushes_total",
		Help: "Store snapshot flushes by result",
	}, []string{"result"})

	jobsProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "background_jobs_total",
		Help: "Background jobs processed by type and result",
	}, []string{"type", "result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheLookups,
		assignmentDuration, assignmentOutcomes,
		trainerOccupation, roomOccupation, overloaded,
		snapshotFlushes, jobsProcessed, goroutines,
	)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHitRatio:      cacheHitRatio,
		cacheLookups:       cacheLookups,
		assignmentDuration: assignmentDuration,
		assignmentOutcomes: assignmentOutcomes,
		trainerOccupation:  trainerOccupation,
		roomOccupation:     roomOccupation,
		overloaded:         overloaded,
		snapshotFlushes:    snapshotFlushes,
		jobsProcessed:      jobsProcessed,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveAssignment records one engine pass.
func (m *MetricsService) ObserveAssignment(scheduled, unassigned, discovered int, duration time.Duration) {
	if m == nil {
		return
	}
	m.assignmentDuration.Observe(duration.Seconds())
	m.assignmentOutcomes.WithLabelValues("scheduled").Add(float64(scheduled))
	m.assignmentOutcomes.WithLabelValues("unassigned").Add(float64(unassigned))
	m.assignmentOutcomes.WithLabelValues("discovered").Add(float64(discovered))
}

// ObserveWorkload publishes per-trainer occupation.
func (m *MetricsService) ObserveWorkload(items []models.TrainerWorkload) {
	if m == nil {
		return
	}
	m.trainerOccupation.Reset()
	for _, w := range items {
		m.trainerOccupation.WithLabelValues(w.TrainerID).Set(float64(w.OccupationRate))
	}
}

// ObserveOccupancy publishes per-room occupation.
func (m *MetricsService) ObserveOccupancy(items []models.RoomOccupancy) {
	if m == nil {
		return
	}
	m.roomOccupation.Reset()
	for _, o := range items {
		m.roomOccupation.WithLabelValues(o.RoomID).Set(float64(o.OccupationRate))
	}
}

// ObserveConstraints publishes how many trainers and rooms are over capacity.
func (m *MetricsService) ObserveConstraints(trainers []models.TrainerConstraint, rooms []models.RoomConstraint) {
	if m == nil {
		return
	}
	var overloadedTrainers, overbookedRooms int
	for _, t := range trainers {
		if t.IsOverloaded {
			overloadedTrainers++
		}
	}
	for _, r := range rooms {
		if r.IsOverbooked {
			overbookedRooms++
		}
	}
	m.overloaded.WithLabelValues("trainer").Set(float64(overloadedTrainers))
	m.overloaded.WithLabelValues("room").Set(float64(overbookedRooms))
}

// RecordSnapshotFlush counts snapshot persistence attempts.
func (m *MetricsService) RecordSnapshotFlush(err error) {
	if m == nil {
		return
	}
	m.snapshotFlushes.WithLabelValues(resultLabel(err)).Inc()
}

// RecordJob counts background jobs by type.
func (m *MetricsService) RecordJob(jobType string, err error) {
	if m == nil {
		return
	}
	m.jobsProcessed.WithLabelValues(jobType, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
