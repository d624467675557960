package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/config"
)

// fixture seeds a private store for one test.
type fixture struct {
	t  *testing.T
	st *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, st: store.New()}
}

func (f *fixture) update(fn func(tx *store.Tx)) {
	f.t.Helper()
	require.NoError(f.t, f.st.Update(context.Background(), func(tx *store.Tx) error {
		fn(tx)
		return nil
	}))
}

func (f *fixture) trainer(id string, max int, specialties ...string) models.Trainer {
	t := models.Trainer{ID: id, Name: id, MaxHoursPerWeek: max, Specialties: specialties, IsActive: true, Absences: []models.Absence{}}
	f.update(func(tx *store.Tx) { tx.PutTrainer(t) })
	return t
}

func (f *fixture) module(id string, totalHours, sessions int, hoursPerSession float64, typ models.ModuleType) models.Module {
	m := models.Module{ID: id, Name: id, TotalHours: totalHours, SessionsPerWeek: sessions, HoursPerSession: hoursPerSession, Type: typ, IsActive: true}
	f.update(func(tx *store.Tx) { tx.PutModule(m) })
	return m
}

func (f *fixture) room(id string) models.Room {
	r := models.Room{ID: id, Name: id, Type: models.RoomClassroom, Capacity: 20, Equipment: []string{}, IsActive: true}
	f.update(func(tx *store.Tx) { tx.PutRoom(r) })
	return r
}

func (f *fixture) group(id, start string, roomID string) models.TrainingGroup {
	g := models.TrainingGroup{ID: id, Name: id, StartDate: mustDate(f.t, start), Status: models.GroupPlanned}
	if roomID != "" {
		g.RoomID = &roomID
	}
	f.update(func(tx *store.Tx) { tx.PutGroup(g) })
	return g
}

func (f *fixture) cell(moduleID, trainerID string, canTeach bool) {
	f.update(func(tx *store.Tx) {
		tx.UpsertAssignment(models.ModuleTrainerAssignment{ID: moduleID + "/" + trainerID, ModuleID: moduleID, TrainerID: trainerID, CanTeach: canTeach})
	})
}

func (f *fixture) schedule(sc models.GroupModuleSchedule) {
	f.update(func(tx *store.Tx) { tx.PutSchedule(sc) })
}

func (f *fixture) engine() *AssignmentEngine {
	return NewAssignmentEngine(f.st, nil, nil, AssignmentEngineConfig{ModuleOrder: config.ModuleOrderLongestFirst})
}

func (f *fixture) getTrainer(id string) models.Trainer {
	f.t.Helper()
	var t models.Trainer
	require.NoError(f.t, f.st.View(context.Background(), func(tx *store.ReadTx) error {
		var ok bool
		t, ok = tx.Trainer(id)
		require.True(f.t, ok)
		return nil
	}))
	return t
}

func (f *fixture) getGroup(id string) models.TrainingGroup {
	f.t.Helper()
	var g models.TrainingGroup
	require.NoError(f.t, f.st.View(context.Background(), func(tx *store.ReadTx) error {
		var ok bool
		g, ok = tx.Group(id)
		require.True(f.t, ok)
		return nil
	}))
	return g
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, raw string) *time.Time {
	d := mustDate(t, raw)
	return &d
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func day(tm *time.Time) string {
	if tm == nil {
		return ""
	}
	return tm.Format("2006-01-02")
}
