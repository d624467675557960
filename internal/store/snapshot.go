package store

import (
	"context"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

// Snapshot is a point-in-time copy of every collection, in insertion order.
type Snapshot struct {
	Version     uint64
	Trainers    []models.Trainer
	Modules     []models.Module
	Rooms       []models.Room
	Groups      []models.TrainingGroup
	Assignments []models.ModuleTrainerAssignment
	Schedules   []models.GroupModuleSchedule
}

// Empty reports whether the snapshot holds no records.
func (s Snapshot) Empty() bool {
	return len(s.Trainers)+len(s.Modules)+len(s.Rooms)+len(s.Groups)+len(s.Assignments)+len(s.Schedules) == 0
}

// Snapshot copies the store under the read lock.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.View(ctx, func(tx *ReadTx) error {
		snap = Snapshot{
			Version:     s.version,
			Trainers:    tx.Trainers(),
			Modules:     tx.Modules(),
			Rooms:       tx.Rooms(),
			Groups:      tx.Groups(),
			Assignments: tx.Assignments(),
			Schedules:   tx.Schedules(),
		}
		return nil
	})
	return snap, err
}

// Restore replaces the store contents with snap. Listeners are not notified.
func (s *Store) Restore(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	resetFrom(s.trainers, snap.Trainers, func(t models.Trainer) string { return t.ID })
	resetFrom(s.modules, snap.Modules, func(m models.Module) string { return m.ID })
	resetFrom(s.rooms, snap.Rooms, func(r models.Room) string { return r.ID })
	resetFrom(s.groups, snap.Groups, func(g models.TrainingGroup) string { return g.ID })
	resetFrom(s.assignments, snap.Assignments, func(a models.ModuleTrainerAssignment) string {
		return pairKey(a.ModuleID, a.TrainerID)
	})
	resetFrom(s.schedules, snap.Schedules, func(sc models.GroupModuleSchedule) string { return sc.ID })
	s.version = snap.Version
	return nil
}

func resetFrom[T any](c *collection[T], values []T, key func(T) string) {
	ids := make([]string, len(values))
	for i, v := range values {
		ids[i] = key(v)
	}
	c.reset(ids, values)
}
