package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

const dashboardCacheKey = "capacity:dashboard"

type workloadProvider interface {
	TrainerWorkload(ctx context.Context) ([]models.TrainerWorkload, error)
	RoomOccupancy(ctx context.Context) ([]models.RoomOccupancy, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Store    *store.Store
	Workload workloadProvider
	Cache    *CacheService
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// DashboardService builds the landing-page capacity overview.
type DashboardService struct {
	store    *store.Store
	workload workloadProvider
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		store:    params.Store,
		workload: params.Workload,
		cache:    params.Cache,
		logger:   logger,
		cacheTTL: ttl,
	}
}

// Summary returns the dashboard payload and whether it was served from cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	key := versionedKey(dashboardCacheKey, s.store.Version())
	var cached models.DashboardSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	var (
		summary   models.DashboardSummary
		workload  []models.TrainerWorkload
		occupancy []models.RoomOccupancy
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workload, err = s.workload.TrainerWorkload(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		occupancy, err = s.workload.RoomOccupancy(gctx)
		return err
	})
	g.Go(func() error {
		return s.store.View(gctx, func(tx *store.ReadTx) error {
			groups := tx.Groups()
			summary.TotalGroups = len(groups)
			for _, grp := range groups {
				switch grp.Status {
				case models.GroupActive:
					summary.ActiveGroups++
				case models.GroupCompleted:
					summary.CompletedGroups++
				case models.GroupDelayed:
					summary.DelayedGroups++
				}
			}
			summary.TotalTrainers = len(tx.ActiveTrainers())
			summary.TotalRooms = len(tx.ActiveRooms())
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	summary.TrainerWorkload = workload
	summary.RoomOccupancy = occupancy
	summary.TrainerOccupationRate = averageRate(workload, func(w models.TrainerWorkload) int { return w.OccupationRate })
	summary.RoomOccupationRate = averageRate(occupancy, func(o models.RoomOccupancy) int { return o.OccupationRate })
	remaining := 100 - summary.TrainerOccupationRate
	if summary.RoomOccupationRate > summary.TrainerOccupationRate {
		remaining = 100 - summary.RoomOccupationRate
	}
	if remaining < 0 {
		remaining = 0
	}
	summary.CapacityRemaining = remaining

	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Debug("dashboard summary not cached", zap.Error(err))
	}
	return &summary, false, nil
}

func averageRate[T any](items []T, rate func(T) int) int {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for _, item := range items {
		total += rate(item)
	}
	return int(math.Round(float64(total) / float64(len(items))))
}
