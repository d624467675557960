package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

// WorkloadService derives trainer workload and room occupancy from the schedule set.
type WorkloadService struct {
	store   *store.Store
	metrics *MetricsService
	logger  *zap.Logger
}

// NewWorkloadService constructs a WorkloadService.
func NewWorkloadService(st *store.Store, metrics *MetricsService, logger *zap.Logger) *WorkloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{store: st, metrics: metrics, logger: logger}
}

// RefreshTrainerLoad recomputes every trainer's currentHoursPerWeek from schedules.
func (s *WorkloadService) RefreshTrainerLoad(ctx context.Context) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		refreshTrainerLoad(tx)
		return nil
	})
}

// TrainerWorkload refreshes the load cache and reports active trainers' occupation.
func (s *WorkloadService) TrainerWorkload(ctx context.Context) ([]models.TrainerWorkload, error) {
	var out []models.TrainerWorkload
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		refreshTrainerLoad(tx)
		out = trainerWorkload(&tx.ReadTx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveWorkload(out)
	return out, nil
}

// RoomOccupancy reports active rooms' weekly occupation.
func (s *WorkloadService) RoomOccupancy(ctx context.Context) ([]models.RoomOccupancy, error) {
	var out []models.RoomOccupancy
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		out = roomOccupancy(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveOccupancy(out)
	return out, nil
}

// trainerLoads sums weekly loads of planned and active schedules per trainer.
// Schedules of deleted groups are ignored.
func trainerLoads(tx *store.ReadTx) map[string]float64 {
	loads := make(map[string]float64)
	for _, sc := range tx.LiveSchedules() {
		if !sc.Loading() {
			continue
		}
		module, ok := tx.Module(sc.ModuleID)
		if !ok {
			continue
		}
		loads[sc.TrainerID] += module.WeeklyLoad()
	}
	return loads
}

// refreshTrainerLoad rewrites only trainers whose cached load drifted.
func refreshTrainerLoad(tx *store.Tx) {
	loads := trainerLoads(&tx.ReadTx)
	for _, trainer := range tx.Trainers() {
		if trainer.CurrentHoursPerWeek == loads[trainer.ID] {
			continue
		}
		trainer.CurrentHoursPerWeek = loads[trainer.ID]
		tx.PutTrainer(trainer)
	}
}

func trainerWorkload(tx *store.ReadTx) []models.TrainerWorkload {
	trainers := tx.ActiveTrainers()
	out := make([]models.TrainerWorkload, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, models.TrainerWorkload{
			TrainerID:      t.ID,
			Name:           t.Name,
			CurrentHours:   t.CurrentHoursPerWeek,
			MaxHours:       t.MaxHoursPerWeek,
			OccupationRate: occupationRate(t.CurrentHoursPerWeek, float64(t.MaxHoursPerWeek)),
		})
	}
	return out
}

func roomOccupancy(tx *store.ReadTx) []models.RoomOccupancy {
	groupLoad := make(map[string]float64)
	for _, sc := range tx.LiveSchedules() {
		if !sc.Loading() {
			continue
		}
		if module, ok := tx.Module(sc.ModuleID); ok {
			groupLoad[sc.GroupID] += module.WeeklyLoad()
		}
	}

	roomLoad := make(map[string]float64)
	for _, g := range tx.Groups() {
		if !g.HasRoom() || !g.Occupying() {
			continue
		}
		roomLoad[*g.RoomID] += groupLoad[g.ID]
	}

	rooms := tx.ActiveRooms()
	out := make([]models.RoomOccupancy, 0, len(rooms))
	for _, r := range rooms {
		occupied := roomLoad[r.ID]
		out = append(out, models.RoomOccupancy{
			RoomID:         r.ID,
			Name:           r.Name,
			OccupiedHours:  occupied,
			AvailableHours: models.RoomHoursPerWeek,
			OccupationRate: occupationRate(occupied, models.RoomHoursPerWeek),
		})
	}
	return out
}
