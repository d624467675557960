package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/tracing"
)

const (
	capacityCachePattern = "capacity:*"
	analysisCacheKey     = "capacity:analysis"
)

// versionedKey scopes a cached payload to the store version it was computed
// from, so a report built before a commit is never served after it.
func versionedKey(base string, version uint64) string {
	return fmt.Sprintf("%s:v%d", base, version)
}

// CapacityServiceParams groups constructor dependencies.
type CapacityServiceParams struct {
	Store    *store.Store
	Planner  *PlanningService
	Cache    *CacheService
	Metrics  *MetricsService
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// CapacityService composes workload, occupancy and planning into one report.
type CapacityService struct {
	store    *store.Store
	planner  *PlanningService
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCapacityService constructs a CapacityService.
func NewCapacityService(params CapacityServiceParams) *CapacityService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CapacityService{
		store:    params.Store,
		planner:  params.Planner,
		cache:    params.Cache,
		metrics:  params.Metrics,
		logger:   logger,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

// Analysis returns the capacity report and whether it came from cache.
func (s *CapacityService) Analysis(ctx context.Context) (*models.CapacityAnalysis, bool, error) {
	key := versionedKey(analysisCacheKey, s.store.Version())
	var cached models.CapacityAnalysis
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	ctx, span := tracing.Start(ctx, "capacity.analysis")
	defer span.End()

	var analysis models.CapacityAnalysis
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		refreshTrainerLoad(tx)
		analysis = s.compose(&tx.ReadTx)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(attribute.Int("capacity.recommendations", len(analysis.Recommendations)))

	s.metrics.ObserveConstraints(analysis.TrainerConstraints, analysis.RoomConstraints)
	if err := s.cache.Set(ctx, key, analysis, s.cacheTTL); err != nil {
		s.logger.Debug("capacity analysis not cached", zap.Error(err))
	}
	return &analysis, false, nil
}

// Invalidate drops every cached capacity payload.
func (s *CapacityService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, capacityCachePattern); err != nil {
		s.logger.Warn("capacity cache invalidation failed", zap.Error(err))
	}
}

func (s *CapacityService) compose(tx *store.ReadTx) models.CapacityAnalysis {
	workload := trainerWorkload(tx)
	occupancy := roomOccupancy(tx)

	trainerConstraints := make([]models.TrainerConstraint, 0, len(workload))
	for _, w := range workload {
		trainerConstraints = append(trainerConstraints, models.TrainerConstraint{
			TrainerID:      w.TrainerID,
			Name:           w.Name,
			IsOverloaded:   w.OccupationRate > 100,
			AvailableHours: math.Max(0, float64(w.MaxHours)-w.CurrentHours),
		})
	}

	roomConstraints := make([]models.RoomConstraint, 0, len(occupancy))
	for _, o := range occupancy {
		room, _ := tx.Room(o.RoomID)
		roomConstraints = append(roomConstraints, models.RoomConstraint{
			RoomID:            o.RoomID,
			Name:              o.Name,
			Type:              room.Type,
			IsOverbooked:      o.OccupationRate > 100,
			AvailableCapacity: math.Max(0, float64(o.AvailableHours)-o.OccupiedHours),
		})
	}

	groupAssignments := groupAssignmentSummaries(tx)

	return models.CapacityAnalysis{
		TrainerConstraints: trainerConstraints,
		RoomConstraints:    roomConstraints,
		GroupAssignments:   groupAssignments,
		WeeklyPlanning:     s.planner.weekly(tx),
		MonthlyPlanning:    s.planner.monthly(tx),
		Recommendations:    recommendations(trainerConstraints, roomConstraints, groupAssignments),
		GeneratedAt:        s.now().UTC(),
	}
}

func groupAssignmentSummaries(tx *store.ReadTx) []models.GroupAssignmentSummary {
	groups := tx.Groups()
	out := make([]models.GroupAssignmentSummary, 0, len(groups))
	for _, g := range groups {
		schedules := tx.GroupSchedules(g.ID)
		trainers := make(map[string]struct{}, len(schedules))
		for _, sc := range schedules {
			trainers[sc.TrainerID] = struct{}{}
		}
		out = append(out, models.GroupAssignmentSummary{
			GroupID:          g.ID,
			GroupName:        g.Name,
			AssignedModules:  len(schedules),
			AssignedTrainers: len(trainers),
			HasRoom:          g.HasRoom(),
		})
	}
	return out
}

// recommendations checks, in order: trainer overload, room overbooking, groups
// without modules, groups without a room. The optimal message stands alone.
func recommendations(trainers []models.TrainerConstraint, rooms []models.RoomConstraint, groups []models.GroupAssignmentSummary) []string {
	var overloaded, overbooked, empty, roomless int
	for _, t := range trainers {
		if t.IsOverloaded {
			overloaded++
		}
	}
	for _, r := range rooms {
		if r.IsOverbooked {
			overbooked++
		}
	}
	for _, g := range groups {
		if g.AssignedModules == 0 {
			empty++
		}
		if !g.HasRoom {
			roomless++
		}
	}

	out := []string{}
	if overloaded > 0 {
		out = append(out, overloadedTrainersMessage(overloaded))
	}
	if overbooked > 0 {
		out = append(out, overbookedRoomsMessage(overbooked))
	}
	if empty > 0 {
		out = append(out, groupsWithoutModulesMessage(empty))
	}
	if roomless > 0 {
		out = append(out, groupsWithoutRoomMessage(roomless))
	}
	if len(out) == 0 {
		out = append(out, recommendationOptimal)
	}
	return out
}
