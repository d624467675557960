// Package store holds the planning entities in memory behind a single
// reader/writer lock. Every read runs inside View and every mutation inside
// Update; a failed Update is rolled back before the lock is released.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/noah-isme/training-capacity-api/internal/models"
)

// CommitListener is notified after an Update changed the store.
type CommitListener func(ctx context.Context, version uint64)

// Store is the process-wide entity store.
type Store struct {
	mu sync.RWMutex

	trainers    *collection[models.Trainer]
	modules     *collection[models.Module]
	rooms       *collection[models.Room]
	groups      *collection[models.TrainingGroup]
	assignments *collection[models.ModuleTrainerAssignment]
	schedules   *collection[models.GroupModuleSchedule]

	version uint64

	listenersMu sync.RWMutex
	listeners   []CommitListener
}

// New returns an empty store.
func New() *Store {
	return &Store{
		trainers:    newCollection[models.Trainer](),
		modules:     newCollection[models.Module](),
		rooms:       newCollection[models.Room](),
		groups:      newCollection[models.TrainingGroup](),
		assignments: newCollection[models.ModuleTrainerAssignment](),
		schedules:   newCollection[models.GroupModuleSchedule](),
	}
}

// OnCommit registers a listener fired after each Update that changed data.
func (s *Store) OnCommit(fn CommitListener) {
	if fn == nil {
		return
	}
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

// Version increases by one for every Update that changed data.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// View runs fn under the read lock.
func (s *Store) View(ctx context.Context, fn func(*ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&ReadTx{s: s})
}

// Update runs fn under the write lock. When fn returns an error every change
// it made is undone.
func (s *Store) Update(ctx context.Context, fn func(*Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	tx := &Tx{ReadTx: ReadTx{s: s}}
	if err := fn(tx); err != nil {
		tx.rollback()
		s.mu.Unlock()
		return err
	}
	changed := len(tx.undo) > 0
	if changed {
		s.version++
	}
	version := s.version
	s.mu.Unlock()

	if changed {
		s.notify(ctx, version)
	}
	return nil
}

func (s *Store) notify(ctx context.Context, version uint64) {
	s.listenersMu.RLock()
	listeners := append([]CommitListener(nil), s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(ctx, version)
	}
}

// ReadTx exposes read access to the store inside View or Update.
type ReadTx struct {
	s *Store
}

// Trainers returns all trainers, including inactive ones, in insertion order.
func (r *ReadTx) Trainers() []models.Trainer {
	return cloneTrainers(r.s.trainers.list(nil))
}

// ActiveTrainers returns trainers with IsActive set.
func (r *ReadTx) ActiveTrainers() []models.Trainer {
	return cloneTrainers(r.s.trainers.list(func(t models.Trainer) bool { return t.IsActive }))
}

// Trainer looks a trainer up by id.
func (r *ReadTx) Trainer(id string) (models.Trainer, bool) {
	t, ok := r.s.trainers.get(id)
	return cloneTrainer(t), ok
}

// Modules returns all modules in insertion order.
func (r *ReadTx) Modules() []models.Module {
	return r.s.modules.list(nil)
}

// ActiveModules returns modules with IsActive set.
func (r *ReadTx) ActiveModules() []models.Module {
	return r.s.modules.list(func(m models.Module) bool { return m.IsActive })
}

// Module looks a module up by id.
func (r *ReadTx) Module(id string) (models.Module, bool) {
	return r.s.modules.get(id)
}

// Rooms returns all rooms in insertion order.
func (r *ReadTx) Rooms() []models.Room {
	return cloneRooms(r.s.rooms.list(nil))
}

// ActiveRooms returns rooms with IsActive set.
func (r *ReadTx) ActiveRooms() []models.Room {
	return cloneRooms(r.s.rooms.list(func(rm models.Room) bool { return rm.IsActive }))
}

// Room looks a room up by id.
func (r *ReadTx) Room(id string) (models.Room, bool) {
	rm, ok := r.s.rooms.get(id)
	return cloneRoom(rm), ok
}

// Groups returns all training groups in insertion order.
func (r *ReadTx) Groups() []models.TrainingGroup {
	return r.s.groups.list(nil)
}

// Group looks a training group up by id.
func (r *ReadTx) Group(id string) (models.TrainingGroup, bool) {
	return r.s.groups.get(id)
}

// Assignments returns the competency matrix in insertion order.
func (r *ReadTx) Assignments() []models.ModuleTrainerAssignment {
	return r.s.assignments.list(nil)
}

// Assignment looks up the matrix cell for a module and trainer.
func (r *ReadTx) Assignment(moduleID, trainerID string) (models.ModuleTrainerAssignment, bool) {
	return r.s.assignments.get(pairKey(moduleID, trainerID))
}

// Schedules returns every schedule row in insertion order, orphans included.
func (r *ReadTx) Schedules() []models.GroupModuleSchedule {
	return r.s.schedules.list(nil)
}

// LiveSchedules returns schedule rows whose group still exists.
func (r *ReadTx) LiveSchedules() []models.GroupModuleSchedule {
	return r.s.schedules.list(func(sc models.GroupModuleSchedule) bool {
		_, ok := r.s.groups.get(sc.GroupID)
		return ok
	})
}

// Schedule looks a schedule up by id.
func (r *ReadTx) Schedule(id string) (models.GroupModuleSchedule, bool) {
	return r.s.schedules.get(id)
}

// GroupSchedules returns a group's schedules sorted by scheduledOrder.
func (r *ReadTx) GroupSchedules(groupID string) []models.GroupModuleSchedule {
	out := r.s.schedules.list(func(sc models.GroupModuleSchedule) bool { return sc.GroupID == groupID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledOrder < out[j].ScheduledOrder })
	return out
}

// Tx is a write transaction. Every mutation records an undo step.
type Tx struct {
	ReadTx
	undo []func()
}

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// PutTrainer inserts or replaces a trainer.
func (tx *Tx) PutTrainer(t models.Trainer) {
	putUndoable(tx, tx.s.trainers, t.ID, cloneTrainer(t))
}

// PutModule inserts or replaces a module.
func (tx *Tx) PutModule(m models.Module) {
	putUndoable(tx, tx.s.modules, m.ID, m)
}

// PutRoom inserts or replaces a room.
func (tx *Tx) PutRoom(rm models.Room) {
	putUndoable(tx, tx.s.rooms, rm.ID, cloneRoom(rm))
}

// PutGroup inserts or replaces a training group.
func (tx *Tx) PutGroup(g models.TrainingGroup) {
	putUndoable(tx, tx.s.groups, g.ID, g)
}

// DeleteGroup removes a group. Its schedules are kept.
func (tx *Tx) DeleteGroup(id string) bool {
	return removeUndoable(tx, tx.s.groups, id)
}

// UpsertAssignment writes the matrix cell for (ModuleID, TrainerID). An existing
// cell keeps its id. It reports whether a new cell was created.
func (tx *Tx) UpsertAssignment(a models.ModuleTrainerAssignment) (models.ModuleTrainerAssignment, bool) {
	key := pairKey(a.ModuleID, a.TrainerID)
	existing, ok := tx.s.assignments.get(key)
	if ok {
		a.ID = existing.ID
		if existing == a {
			return existing, false
		}
	}
	putUndoable(tx, tx.s.assignments, key, a)
	return a, !ok
}

// DeleteAssignment removes the matrix cell for a module and trainer.
func (tx *Tx) DeleteAssignment(moduleID, trainerID string) bool {
	return removeUndoable(tx, tx.s.assignments, pairKey(moduleID, trainerID))
}

// PutSchedule inserts or replaces a schedule row.
func (tx *Tx) PutSchedule(sc models.GroupModuleSchedule) {
	putUndoable(tx, tx.s.schedules, sc.ID, sc)
}

// DeleteSchedule removes a schedule row.
func (tx *Tx) DeleteSchedule(id string) bool {
	return removeUndoable(tx, tx.s.schedules, id)
}

func putUndoable[T any](tx *Tx, c *collection[T], id string, v T) {
	prev, existed := c.put(id, v)
	tx.undo = append(tx.undo, func() {
		if existed {
			c.items[id] = prev
			return
		}
		c.remove(id)
	})
}

func removeUndoable[T any](tx *Tx, c *collection[T], id string) bool {
	v, idx, ok := c.remove(id)
	if !ok {
		return false
	}
	tx.undo = append(tx.undo, func() { c.insertAt(idx, id, v) })
	return true
}

func pairKey(moduleID, trainerID string) string {
	return moduleID + "\x00" + trainerID
}

func cloneTrainer(t models.Trainer) models.Trainer {
	t.Specialties = append([]string(nil), t.Specialties...)
	t.Absences = append([]models.Absence(nil), t.Absences...)
	return t
}

func cloneTrainers(in []models.Trainer) []models.Trainer {
	for i := range in {
		in[i] = cloneTrainer(in[i])
	}
	return in
}

func cloneRoom(rm models.Room) models.Room {
	rm.Equipment = append([]string(nil), rm.Equipment...)
	return rm
}

func cloneRooms(in []models.Room) []models.Room {
	for i := range in {
		in[i] = cloneRoom(in[i])
	}
	return in
}
